// Package parking implements the in-memory core of the smart parking
// system: the zone/area/slot registry, the allocation engine, the request
// lifecycle and the rollback manager, composed into a single System facade.
//
// The package is a synchronous library with no internal locking; the caller
// (the HTTP layer) must serialize mutating calls. Every failure is reported
// through one of the sentinel errors below so handlers can translate it
// into the right response with errors.Is.
package parking

import (
	"errors"

	"github.com/iliyamo/smart-parking-system/internal/collection"
	"github.com/iliyamo/smart-parking-system/internal/model"
)

// ErrNotFound is returned when a zone, area, slot, vehicle or request id is
// unknown to the registry.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned on duplicate registration, e.g. registering
// the same vehicle twice. The existing record is never updated.
var ErrAlreadyExists = errors.New("already exists")

// ErrNoCapacity is returned when the allocation search exhausted every zone
// without finding a free slot. The request stays REQUESTED and nothing is
// recorded for rollback.
var ErrNoCapacity = errors.New("no capacity")

// ErrInvalidArgument is returned for malformed input such as a negative
// rollback count or a non-positive area capacity.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrInvalidStateTransition is returned when an event is not valid for the
// request's current state. Alias of the model sentinel so errors.Is matches
// across both packages.
var ErrInvalidStateTransition = model.ErrInvalidTransition

// ErrCapacityExceeded is returned when a bounded collection (area array,
// pending queue, rollback stack) is full. Alias of the collection sentinel.
var ErrCapacityExceeded = collection.ErrCapacityExceeded
