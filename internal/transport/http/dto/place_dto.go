package dto

type PlaceRequest struct {
	Title              string `json:"placetitle"`
	Location           string `json:"placelocation"`
	GuideName          string `json:"guidename"`
	GuideMobile        string `json:"guidemobile"`
	GuideLanguage      string `json:"guidelanguage"`
	ResidentialDetails string `json:"residentialdetails"`
	PoliceStation      string `json:"policestation"`
	FireStation        string `json:"firestation"`
	MapLink            string `json:"maplink"`
	Description        string `json:"description"`
	Latitude           string `json:"latitude"`
	Longitude          string `json:"longitude"`
}

type PlaceResponse struct {
	ID                 string `json:"_id"`
	Title              string `json:"placetitle"`
	Location           string `json:"placelocation"`
	GuideName          string `json:"guidename,omitempty"`
	GuideMobile        string `json:"guidemobile,omitempty"`
	GuideLanguage      string `json:"guidelanguage,omitempty"`
	ResidentialDetails string `json:"residentialdetails,omitempty"`
	PoliceStation      string `json:"policestation,omitempty"`
	FireStation        string `json:"firestation,omitempty"`
	MapLink            string `json:"maplink,omitempty"`
	Description        string `json:"description"`
	ImageURL           string `json:"image,omitempty"`
	Latitude           string `json:"latitude,omitempty"`
	Longitude          string `json:"longitude,omitempty"`
}

type PlaceCreateResponse struct {
	Status string        `json:"status"`
	Place  PlaceResponse `json:"place"`
}

type PlaceUpdateResponse struct {
	Status string        `json:"status"`
	Place  PlaceResponse `json:"updatedPlace"`
}

type PlaceDeleteResponse struct {
	Message string        `json:"message"`
	Place   PlaceResponse `json:"deletedPlace"`
}

type PlaceImageResponse struct {
	Status   string `json:"status"`
	ImageURL string `json:"image"`
}
