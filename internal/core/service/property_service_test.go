package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/alquileresmvp/rental-system/internal/core/domain"
	"github.com/alquileresmvp/rental-system/internal/core/ports"
)

type propertyFixture struct {
	users      *stubUserRepo
	properties *stubPropertyRepo
	blocks     *stubBlockRepo
	bookings   *stubBookingRepo
	svc        ports.PropertyService
}

func newPropertyFixture() *propertyFixture {
	users := newStubUserRepo()
	properties := newStubPropertyRepo()
	blocks := newStubBlockRepo()
	bookings := newStubBookingRepo()
	identity := NewIdentityService(users, zerolog.Nop())
	guard := NewOwnershipGuard(identity, properties)
	svc := NewPropertyService(identity, guard, properties, blocks, bookings, zerolog.Nop())
	return &propertyFixture{users: users, properties: properties, blocks: blocks, bookings: bookings, svc: svc}
}

func validListingInput() ports.CreatePropertyInput {
	return ports.CreatePropertyInput{
		Title:       "Cabaña en el Lago",
		Description: "Dos ambientes frente al agua",
		Address:     "Ruta 40 km 2021",
		City:        "Bariloche",
		Province:    "Río Negro",
		Price:       "150.50",
		MaxGuests:   4,
	}
}

func TestPropertyService_Create(t *testing.T) {
	f := newPropertyFixture()
	ctx := context.Background()
	actor := ports.Identity{SubjectID: "sub_host", Email: "host@example.com", FullName: "Ana Host"}

	created, err := f.svc.Create(ctx, actor, validListingInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected created property to carry an id")
	}
	if !strings.HasPrefix(created.Slug, "cabana-en-el-lago-") {
		t.Errorf("unexpected slug: %q", created.Slug)
	}
	if created.PricePerNight != 150.50 {
		t.Errorf("price = %v, want 150.50", created.PricePerNight)
	}
	if !created.Active {
		t.Error("new listing must be active")
	}
	if created.Images == nil || created.Amenities == nil {
		t.Error("images and amenities must never be nil")
	}

	// The acting host was provisioned on the fly and recorded as owner.
	owner, err := f.users.FindBySubject(ctx, "sub_host")
	if err != nil {
		t.Fatalf("owner was not provisioned: %v", err)
	}
	if created.OwnerID != owner.ID {
		t.Errorf("owner id = %q, want %q", created.OwnerID, owner.ID)
	}
}

func TestPropertyService_Create_RequiredFields(t *testing.T) {
	f := newPropertyFixture()
	ctx := context.Background()
	actor := ports.Identity{SubjectID: "sub_host"}

	cases := []struct {
		name   string
		mutate func(*ports.CreatePropertyInput)
	}{
		{"missing title", func(in *ports.CreatePropertyInput) { in.Title = "  " }},
		{"missing description", func(in *ports.CreatePropertyInput) { in.Description = "" }},
		{"missing address", func(in *ports.CreatePropertyInput) { in.Address = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validListingInput()
			tc.mutate(&input)
			if _, err := f.svc.Create(ctx, actor, input); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestPropertyService_Create_PriceCoercion(t *testing.T) {
	f := newPropertyFixture()
	ctx := context.Background()
	actor := ports.Identity{SubjectID: "sub_host"}

	cases := []struct {
		raw  string
		want float64
	}{
		{"200", 200},
		{" 99.99 ", 99.99},
		{"abc", 0},
		{"", 0},
		{"-50", 0},
		{"NaN", 0},
		{"+Inf", 0},
	}
	for _, tc := range cases {
		input := validListingInput()
		input.Price = tc.raw
		created, err := f.svc.Create(ctx, actor, input)
		if err != nil {
			t.Fatalf("Create(%q) returned error: %v", tc.raw, err)
		}
		if created.PricePerNight != tc.want {
			t.Errorf("price %q coerced to %v, want %v", tc.raw, created.PricePerNight, tc.want)
		}
	}
}

func TestPropertyService_Update(t *testing.T) {
	f := newPropertyFixture()
	ctx := context.Background()
	host := ports.Identity{SubjectID: "sub_host"}

	created, err := f.svc.Create(ctx, host, validListingInput())
	if err != nil {
		t.Fatalf("seed property: %v", err)
	}

	input := ports.UpdatePropertyInput{
		PropertyID:  created.ID,
		Title:       "Cabaña renovada",
		Description: created.Description,
		Address:     created.Address,
		Price:       "180",
	}
	updated, err := f.svc.Update(ctx, host, input)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "Cabaña renovada" {
		t.Errorf("title = %q", updated.Title)
	}
	if updated.Slug != created.Slug {
		t.Error("slug must be stable unless a re-slug is requested")
	}

	input.ReSlug = true
	updated, err = f.svc.Update(ctx, host, input)
	if err != nil {
		t.Fatalf("Update with re-slug returned error: %v", err)
	}
	if !strings.HasPrefix(updated.Slug, "cabana-renovada-") {
		t.Errorf("re-slug produced %q", updated.Slug)
	}
	if updated.Slug == created.Slug {
		t.Error("re-slug must mint a fresh slug")
	}

	// Other users cannot touch the listing.
	f.users.seed(&domain.User{ID: "user_x", SubjectID: "sub_x"})
	if _, err := f.svc.Update(ctx, ports.Identity{SubjectID: "sub_x"}, input); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPropertyService_Delete_BlockedByActiveBookings(t *testing.T) {
	f := newPropertyFixture()
	ctx := context.Background()
	host := ports.Identity{SubjectID: "sub_host"}

	created, err := f.svc.Create(ctx, host, validListingInput())
	if err != nil {
		t.Fatalf("seed property: %v", err)
	}

	booking, err := f.bookings.Create(ctx, &domain.Booking{
		PropertyID: created.ID,
		GuestID:    "user_guest",
		CheckIn:    date(2099, 1, 10),
		CheckOut:   date(2099, 1, 15),
		Status:     domain.BookingConfirmed,
	})
	if err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	if err := f.svc.Delete(ctx, host, created.ID); !errors.Is(err, domain.ErrActiveBookings) {
		t.Fatalf("expected ErrActiveBookings, got %v", err)
	}

	// Cancelling the stay releases the listing for deletion.
	if err := f.bookings.UpdateStatus(ctx, booking.ID, domain.BookingCancelled); err != nil {
		t.Fatalf("cancel booking: %v", err)
	}
	if err := f.svc.Delete(ctx, host, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := f.properties.FindByID(ctx, created.ID); !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("property still present after delete: %v", err)
	}
}

func TestPropertyService_Delete_CascadesBlockedRanges(t *testing.T) {
	f := newPropertyFixture()
	ctx := context.Background()
	host := ports.Identity{SubjectID: "sub_host"}

	created, err := f.svc.Create(ctx, host, validListingInput())
	if err != nil {
		t.Fatalf("seed property: %v", err)
	}
	if _, err := f.svc.AddBlockedRange(ctx, host, ports.CreateBlockedRangeInput{
		PropertyID: created.ID,
		From:       date(2099, 2, 1),
		To:         date(2099, 2, 10),
		Note:       "mantenimiento",
	}); err != nil {
		t.Fatalf("AddBlockedRange returned error: %v", err)
	}

	if err := f.svc.Delete(ctx, host, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	remaining, err := f.blocks.ListByProperty(ctx, created.ID)
	if err != nil {
		t.Fatalf("ListByProperty returned error: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected blocked ranges to be removed with the listing, found %d", len(remaining))
	}
}

func TestPropertyService_BlockedRanges(t *testing.T) {
	f := newPropertyFixture()
	ctx := context.Background()
	host := ports.Identity{SubjectID: "sub_host"}

	created, err := f.svc.Create(ctx, host, validListingInput())
	if err != nil {
		t.Fatalf("seed property: %v", err)
	}

	t.Run("inverted range rejected", func(t *testing.T) {
		_, err := f.svc.AddBlockedRange(ctx, host, ports.CreateBlockedRangeInput{
			PropertyID: created.ID,
			From:       date(2099, 2, 10),
			To:         date(2099, 2, 1),
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("remove scoped to property", func(t *testing.T) {
		block, err := f.svc.AddBlockedRange(ctx, host, ports.CreateBlockedRangeInput{
			PropertyID: created.ID,
			From:       date(2099, 2, 1),
			To:         date(2099, 2, 10),
		})
		if err != nil {
			t.Fatalf("AddBlockedRange returned error: %v", err)
		}

		other, err := f.svc.Create(ctx, host, validListingInput())
		if err != nil {
			t.Fatalf("seed second property: %v", err)
		}
		if err := f.svc.RemoveBlockedRange(ctx, host, other.ID, block.ID); !errors.Is(err, domain.ErrBlockNotFound) {
			t.Fatalf("expected ErrBlockNotFound for foreign property, got %v", err)
		}
		if err := f.svc.RemoveBlockedRange(ctx, host, created.ID, block.ID); err != nil {
			t.Fatalf("RemoveBlockedRange returned error: %v", err)
		}
	})
}
