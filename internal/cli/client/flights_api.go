package client

import (
	"context"
	"net/http"
	"net/url"
)

// FlightsAPI groups the flight endpoints
type FlightsAPI struct {
	c *Client
}

func (f FlightFilter) values() url.Values {
	q := url.Values{}
	if f.From != "" {
		q.Set("from", f.From)
	}
	if f.To != "" {
		q.Set("to", f.To)
	}
	if f.JourneyDate != "" {
		q.Set("journeyDate", f.JourneyDate)
	}
	return q
}

// GetAll returns flights matching filter
func (f *FlightsAPI) GetAll(ctx context.Context, filter FlightFilter) ([]Flight, error) {
	var flights []Flight
	err := f.c.do(ctx, request{method: http.MethodGet, path: "/flights", query: filter.values()}, &flights)
	return flights, err
}

// GetByID returns a single flight
func (f *FlightsAPI) GetByID(ctx context.Context, id string) (*Flight, error) {
	var flight Flight
	if err := f.c.do(ctx, request{method: http.MethodGet, path: "/flights/" + url.PathEscape(id)}, &flight); err != nil {
		return nil, err
	}
	return &flight, nil
}

// Create adds a flight. Admin only.
func (f *FlightsAPI) Create(ctx context.Context, in FlightInput) (*Flight, error) {
	var flight Flight
	if err := f.c.do(ctx, request{method: http.MethodPost, path: "/flights", body: in}, &flight); err != nil {
		return nil, err
	}
	return &flight, nil
}

// Update replaces a flight's details. Admin only.
func (f *FlightsAPI) Update(ctx context.Context, id string, in FlightInput) (*Flight, error) {
	var flight Flight
	if err := f.c.do(ctx, request{method: http.MethodPut, path: "/flights/" + url.PathEscape(id), body: in}, &flight); err != nil {
		return nil, err
	}
	return &flight, nil
}

// Delete removes a flight. Admin only.
func (f *FlightsAPI) Delete(ctx context.Context, id string) error {
	return f.c.do(ctx, request{method: http.MethodDelete, path: "/flights/" + url.PathEscape(id)}, nil)
}
