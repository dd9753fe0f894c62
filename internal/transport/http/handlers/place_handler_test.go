package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	mediasvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/media"
	placessvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/places"
	"github.com/AKASHGK006/Visit-Karnataka-Server/internal/transport/http/dto"
)

type fakePlaceStore struct {
	places map[string]placessvc.Place
	nextID int
}

func newFakePlaceStore() *fakePlaceStore {
	return &fakePlaceStore{places: make(map[string]placessvc.Place)}
}

func (s *fakePlaceStore) Insert(_ context.Context, place placessvc.Place) (placessvc.Place, error) {
	s.nextID++
	place.ID = fmt.Sprintf("place-%d", s.nextID)
	s.places[place.ID] = place
	return place, nil
}

func (s *fakePlaceStore) List(_ context.Context) ([]placessvc.Place, error) {
	out := make([]placessvc.Place, 0, len(s.places))
	for _, place := range s.places {
		out = append(out, place)
	}
	return out, nil
}

func (s *fakePlaceStore) Get(_ context.Context, id string) (placessvc.Place, error) {
	place, ok := s.places[id]
	if !ok {
		return placessvc.Place{}, placessvc.ErrNotFound
	}
	return place, nil
}

func (s *fakePlaceStore) Update(_ context.Context, id string, place placessvc.Place) (placessvc.Place, error) {
	if _, ok := s.places[id]; !ok {
		return placessvc.Place{}, placessvc.ErrNotFound
	}
	place.ID = id
	s.places[id] = place
	return place, nil
}

func (s *fakePlaceStore) Delete(_ context.Context, id string) (placessvc.Place, error) {
	place, ok := s.places[id]
	if !ok {
		return placessvc.Place{}, placessvc.ErrNotFound
	}
	delete(s.places, id)
	return place, nil
}

func (s *fakePlaceStore) SetImageKey(_ context.Context, id, key string) error {
	place, ok := s.places[id]
	if !ok {
		return placessvc.ErrNotFound
	}
	place.ImageKey = key
	s.places[id] = place
	return nil
}

func newPlaceRouter() (*chi.Mux, *fakePlaceStore) {
	store := newFakePlaceStore()
	handler := NewPlaceHandler(placessvc.NewService(store), mediasvc.NewService(nil), zap.NewNop())

	r := chi.NewRouter()
	r.Post("/Createplaces", handler.Create)
	r.Get("/places", handler.List)
	r.Get("/places/{id}", handler.Get)
	r.Put("/places/{id}", handler.Update)
	r.Delete("/places/{id}", handler.Delete)
	return r, store
}

const validPlaceJSON = `{
	"placetitle": "Mysore Palace",
	"placelocation": "Mysuru",
	"description": "Royal residence of the Wadiyar dynasty.",
	"guidename": "Ravi",
	"guidemobile": "9900112233"
}`

func TestPlaceCreateAndGet(t *testing.T) {
	router, _ := newPlaceRouter()

	req := httptest.NewRequest(http.MethodPost, "/Createplaces", strings.NewReader(validPlaceJSON))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("create status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var created dto.PlaceCreateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create body: %v", err)
	}
	if created.Status != "OK" || created.Place.ID == "" {
		t.Fatalf("unexpected create response: %+v", created)
	}

	req = httptest.NewRequest(http.MethodGet, "/places/"+created.Place.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status: got %d", rec.Code)
	}
	var got dto.PlaceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode get body: %v", err)
	}
	if got.Title != "Mysore Palace" || got.Location != "Mysuru" {
		t.Fatalf("unexpected place: %+v", got)
	}
}

func TestPlaceCreateValidation(t *testing.T) {
	router, _ := newPlaceRouter()

	req := httptest.NewRequest(http.MethodPost, "/Createplaces", strings.NewReader(`{"placetitle":"No location"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["code"] != "VALIDATION_ERROR" {
		t.Fatalf("code: got %q, want VALIDATION_ERROR", body["code"])
	}
}

func TestPlaceGetNotFound(t *testing.T) {
	router, _ := newPlaceRouter()

	req := httptest.NewRequest(http.MethodGet, "/places/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestPlaceUpdate(t *testing.T) {
	router, store := newPlaceRouter()

	created, _ := store.Insert(context.Background(), placessvc.Place{
		Title: "Hampi", Location: "Ballari", Description: "Vijayanagara ruins.",
	})

	updateJSON := `{"placetitle":"Hampi Ruins","placelocation":"Ballari","description":"UNESCO world heritage site."}`
	req := httptest.NewRequest(http.MethodPut, "/places/"+created.ID, strings.NewReader(updateJSON))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("update status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var body dto.PlaceUpdateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode update body: %v", err)
	}
	if body.Place.Title != "Hampi Ruins" {
		t.Fatalf("title not updated: %q", body.Place.Title)
	}
}

func TestPlaceDelete(t *testing.T) {
	router, store := newPlaceRouter()

	created, _ := store.Insert(context.Background(), placessvc.Place{
		Title: "Gokarna", Location: "Uttara Kannada", Description: "Beach town.",
	})

	req := httptest.NewRequest(http.MethodDelete, "/places/"+created.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("delete status: got %d", rec.Code)
	}
	var body dto.PlaceDeleteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode delete body: %v", err)
	}
	if body.Message != "Place deleted successfully" {
		t.Fatalf("message: got %q", body.Message)
	}
	if body.Place.ID != created.ID {
		t.Fatalf("deleted id: got %q, want %q", body.Place.ID, created.ID)
	}

	if _, err := store.Get(context.Background(), created.ID); err == nil {
		t.Fatal("place should be gone from the store")
	}
}
