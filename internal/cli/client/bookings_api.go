package client

import (
	"context"
	"net/http"
	"net/url"
)

// BookingsAPI groups the booking endpoints
type BookingsAPI struct {
	c *Client
}

// Create submits a booking for the current user
func (b *BookingsAPI) Create(ctx context.Context, in BookingInput) (*Booking, error) {
	var booking Booking
	if err := b.c.do(ctx, request{method: http.MethodPost, path: "/bookings", body: in}, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetMyBookings returns the current user's bookings
func (b *BookingsAPI) GetMyBookings(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	err := b.c.do(ctx, request{method: http.MethodGet, path: "/bookings/my-bookings"}, &bookings)
	return bookings, err
}

// GetAll returns every booking. Admin only.
func (b *BookingsAPI) GetAll(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	err := b.c.do(ctx, request{method: http.MethodGet, path: "/bookings"}, &bookings)
	return bookings, err
}

// UpdateStatus sets a booking's status. Admin only.
func (b *BookingsAPI) UpdateStatus(ctx context.Context, id, status string) (*Booking, error) {
	var booking Booking
	body := map[string]string{"status": status}
	if err := b.c.do(ctx, request{method: http.MethodPatch, path: "/bookings/" + url.PathEscape(id) + "/status", body: body}, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}
