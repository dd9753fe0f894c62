package dto

import "time"

type BookingRequest struct {
	Name         string    `json:"name"`
	MobileNumber string    `json:"mobileNumber"`
	Place        string    `json:"place"`
	Participants int       `json:"participants"`
	Date         time.Time `json:"date"`
	Time         string    `json:"time"`
	Language     string    `json:"language"`
	TotalPrice   float64   `json:"totalPrice"`
}

type BookingResponse struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	MobileNumber string    `json:"mobileNumber"`
	Place        string    `json:"place"`
	Participants int       `json:"participants"`
	Date         time.Time `json:"date"`
	Time         string    `json:"time"`
	Language     string    `json:"language"`
	TotalPrice   float64   `json:"totalPrice"`
}

type BookingDeleteResponse struct {
	Message string `json:"message"`
}
