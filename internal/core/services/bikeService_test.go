package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"
)

func TestCreateBikeValidates(t *testing.T) {
	f := newFixture(t)

	_, err := f.bikes.CreateBike(context.Background(), &domain.Bike{
		Name: "Broken",
		Size: "XXL",
		Type: domain.City,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestGetBikeReadsThroughCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.bike(t, true)

	if _, err := f.bikes.GetBikeByID(ctx, b.BikeID.String()); err != nil {
		t.Fatalf("get bike: %v", err)
	}
	if !f.redis.Exists(bikeCacheKey(b.BikeID)) {
		t.Fatal("expected cache entry after first read")
	}
	if ttl := f.redis.TTL(bikeCacheKey(b.BikeID)); ttl != bikeCacheTTL {
		t.Fatalf("expected ttl %v, got %v", bikeCacheTTL, ttl)
	}

	// Served from the cache even though the record is gone underneath.
	if err := f.store.DeleteBike(ctx, b.BikeID); err != nil {
		t.Fatalf("delete from store: %v", err)
	}
	got, err := f.bikes.GetBikeByID(ctx, b.BikeID.String())
	if err != nil {
		t.Fatalf("cached get: %v", err)
	}
	if got.Name != b.Name {
		t.Fatalf("unexpected cached bike %+v", got)
	}
}

func TestGetBikeMalformedID(t *testing.T) {
	f := newFixture(t)

	if _, err := f.bikes.GetBikeByID(context.Background(), "42"); !errors.Is(err, domain.ErrBikeNotFound) {
		t.Fatalf("expected ErrBikeNotFound, got %v", err)
	}
}

func TestUpdateBikeAppliesOnlyProvidedFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.bike(t, true)
	if _, err := f.bikes.GetBikeByID(ctx, b.BikeID.String()); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	price := 30.0
	electric := domain.Electric
	updated, err := f.bikes.UpdateBike(ctx, b.BikeID.String(), domain.BikePatch{Price: &price, Type: &electric})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Price != 30 || updated.Type != domain.Electric {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Name != b.Name || updated.Size != b.Size || !updated.Available {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if f.redis.Exists(bikeCacheKey(b.BikeID)) {
		t.Fatal("expected cache invalidated after update")
	}
}

func TestUpdateBikeRejectsInvalidPatch(t *testing.T) {
	f := newFixture(t)
	b := f.bike(t, true)

	negative := -5.0
	_, err := f.bikes.UpdateBike(context.Background(), b.BikeID.String(), domain.BikePatch{Price: &negative})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestDeleteBikeInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.bike(t, true)
	if _, err := f.bikes.GetBikeByID(ctx, b.BikeID.String()); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	if err := f.bikes.DeleteBike(ctx, b.BikeID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.bikes.GetBikeByID(ctx, b.BikeID.String()); !errors.Is(err, domain.ErrBikeNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := f.bikes.DeleteBike(ctx, b.BikeID.String()); !errors.Is(err, domain.ErrBikeNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestBikeCacheKeyIgnoresIDSpelling(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.bike(t, true)
	upper := strings.ToUpper(b.BikeID.String())

	for _, id := range []string{upper, "{" + b.BikeID.String() + "}", "urn:uuid:" + b.BikeID.String()} {
		if _, err := f.bikes.GetBikeByID(ctx, id); err != nil {
			t.Fatalf("get %s: %v", id, err)
		}
	}
	if keys := f.redis.Keys(); len(keys) != 1 || keys[0] != bikeCacheKey(b.BikeID) {
		t.Fatalf("expected one canonical cache entry, got %v", keys)
	}

	if err := f.bikes.DeleteBike(ctx, upper); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.bikes.GetBikeByID(ctx, upper); !errors.Is(err, domain.ErrBikeNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
