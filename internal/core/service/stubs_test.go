package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alquileresmvp/rental-system/internal/core/domain"
	"github.com/alquileresmvp/rental-system/internal/core/ports"
)

type stubUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User // keyed by subject id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindBySubject(_ context.Context, subjectID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[subjectID]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.users[u.SubjectID]; ok {
		return cloneUser(existing), nil
	}
	copy := cloneUser(u)
	r.seq++
	copy.ID = fmt.Sprintf("user_%d", r.seq)
	r.users[copy.SubjectID] = cloneUser(copy)
	return copy, nil
}

// seed inserts a user directly, bypassing provisioning.
func (r *stubUserRepo) seed(u *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.SubjectID] = cloneUser(u)
	return cloneUser(u)
}

type stubPropertyRepo struct {
	mu         sync.Mutex
	seq        int
	properties map[string]*domain.Property
}

func newStubPropertyRepo() *stubPropertyRepo {
	return &stubPropertyRepo{properties: make(map[string]*domain.Property)}
}

func cloneProperty(p *domain.Property) *domain.Property {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPropertyRepo) Create(_ context.Context, p *domain.Property) (*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.properties {
		if existing.Slug == p.Slug {
			return nil, domain.ErrDuplicateSlug
		}
	}
	copy := cloneProperty(p)
	r.seq++
	copy.ID = fmt.Sprintf("prop_%d", r.seq)
	r.properties[copy.ID] = cloneProperty(copy)
	return copy, nil
}

func (r *stubPropertyRepo) FindByID(_ context.Context, id string) (*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.properties[id]; ok {
		return cloneProperty(p), nil
	}
	return nil, domain.ErrPropertyNotFound
}

func (r *stubPropertyRepo) FindBySlug(_ context.Context, slug string) (*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.properties {
		if p.Slug == slug {
			return cloneProperty(p), nil
		}
	}
	return nil, domain.ErrPropertyNotFound
}

func (r *stubPropertyRepo) Update(_ context.Context, p *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.properties[p.ID]; !ok {
		return domain.ErrPropertyNotFound
	}
	r.properties[p.ID] = cloneProperty(p)
	return nil
}

func (r *stubPropertyRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.properties[id]; !ok {
		return domain.ErrPropertyNotFound
	}
	delete(r.properties, id)
	return nil
}

func (r *stubPropertyRepo) ListActive(_ context.Context) ([]*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Property, 0, len(r.properties))
	for _, p := range r.properties {
		if p.Active {
			out = append(out, cloneProperty(p))
		}
	}
	return out, nil
}

func (r *stubPropertyRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Property, 0)
	for _, p := range r.properties {
		if p.OwnerID == ownerID {
			out = append(out, cloneProperty(p))
		}
	}
	return out, nil
}

type stubBookingRepo struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]*domain.Booking
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: make(map[string]*domain.Booking)}
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := cloneBooking(b)
	r.seq++
	copy.ID = fmt.Sprintf("booking_%d", r.seq)
	r.bookings[copy.ID] = cloneBooking(copy)
	return copy, nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		return cloneBooking(b), nil
	}
	return nil, domain.ErrBookingNotFound
}

func (r *stubBookingRepo) ListActiveByProperty(_ context.Context, propertyID string) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.PropertyID == propertyID && b.Status.CountsAgainstAvailability() {
			out = append(out, cloneBooking(b))
		}
	}
	return out, nil
}

func (r *stubBookingRepo) HasActiveAfter(_ context.Context, propertyID string, date time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.PropertyID == propertyID && b.Status.CountsAgainstAvailability() && b.CheckOut.After(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubBookingRepo) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (r *stubBookingRepo) ListByGuest(_ context.Context, guestID string) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.GuestID == guestID {
			out = append(out, cloneBooking(b))
		}
	}
	return out, nil
}

func (r *stubBookingRepo) ListByProperties(_ context.Context, propertyIDs []string) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[string]bool, len(propertyIDs))
	for _, id := range propertyIDs {
		wanted[id] = true
	}
	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if wanted[b.PropertyID] {
			out = append(out, cloneBooking(b))
		}
	}
	return out, nil
}

type stubBlockRepo struct {
	mu     sync.Mutex
	seq    int
	blocks map[string]*domain.BlockedRange
}

func newStubBlockRepo() *stubBlockRepo {
	return &stubBlockRepo{blocks: make(map[string]*domain.BlockedRange)}
}

func (r *stubBlockRepo) Create(_ context.Context, br *domain.BlockedRange) (*domain.BlockedRange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *br
	r.seq++
	copy.ID = fmt.Sprintf("block_%d", r.seq)
	stored := copy
	r.blocks[copy.ID] = &stored
	return &copy, nil
}

func (r *stubBlockRepo) Delete(_ context.Context, propertyID, blockID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	br, ok := r.blocks[blockID]
	if !ok || br.PropertyID != propertyID {
		return domain.ErrBlockNotFound
	}
	delete(r.blocks, blockID)
	return nil
}

func (r *stubBlockRepo) ListByProperty(_ context.Context, propertyID string) ([]*domain.BlockedRange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.BlockedRange, 0)
	for _, br := range r.blocks {
		if br.PropertyID == propertyID {
			copy := *br
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *stubBlockRepo) DeleteByProperty(_ context.Context, propertyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, br := range r.blocks {
		if br.PropertyID == propertyID {
			delete(r.blocks, id)
		}
	}
	return nil
}

// memoryLocker serializes per property with plain in-process mutexes,
// standing in for the Redis lock.
type memoryLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newMemoryLocker() *memoryLocker {
	return &memoryLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *memoryLocker) Acquire(_ context.Context, propertyID string) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[propertyID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[propertyID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}

// failingLocker refuses every acquisition, simulating lock wait exhaustion.
type failingLocker struct{}

func (failingLocker) Acquire(_ context.Context, _ string) (func(), error) {
	return nil, fmt.Errorf("lock wait exhausted")
}

// recordingEvents captures event callbacks for assertions.
type recordingEvents struct {
	mu        sync.Mutex
	confirmed []*domain.Booking
	cancelled []*domain.Booking
}

func (e *recordingEvents) BookingConfirmed(b *domain.Booking) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.confirmed = append(e.confirmed, b)
}

func (e *recordingEvents) BookingCancelled(b *domain.Booking) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelled = append(e.cancelled, b)
}

var _ ports.UserRepository = (*stubUserRepo)(nil)
var _ ports.PropertyRepository = (*stubPropertyRepo)(nil)
var _ ports.BookingRepository = (*stubBookingRepo)(nil)
var _ ports.BlockedRangeRepository = (*stubBlockRepo)(nil)
var _ PropertyLocker = (*memoryLocker)(nil)
var _ BookingEvents = (*recordingEvents)(nil)
