// Package location turns saved-location picks and free-text addresses into
// draft locations. Responses for a field are applied only when they belong to
// the most recent call for that field.
package location

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"fleet-console/internal/domain/request"
	"fleet-console/internal/pkg/clock"
	"fleet-console/internal/pkg/config"
	"fleet-console/internal/pkg/errs"
	"fleet-console/internal/pkg/token"
	"fleet-console/internal/usecase/draftstore"
	"fleet-console/internal/usecase/shared"

	"golang.org/x/sync/singleflight"
)

var (
	ErrUnknownField   = errs.New("unknown location field")
	ErrEmptySelection = errs.New("selection requires a saved location id or a description")
)

const (
	msgSearchFailed   = "Could not load address suggestions"
	msgLookupFailed   = "Could not find that address"
	msgUnknownSaved   = "Saved location not found"
	msgDirectoryError = "Could not load saved locations"
)

// Selection is what the user picked for a location field: a saved location
// or a free-text place description.
type Selection struct {
	SavedID     string
	Description string
}

func SavedSelection(id string) Selection {
	return Selection{SavedID: strings.TrimSpace(id)}
}

func DescriptionSelection(description string) Selection {
	return Selection{Description: strings.TrimSpace(description)}
}

func (s Selection) IsSaved() bool {
	return s.SavedID != ""
}

// Resolution is the outcome of Resolve. Applied is false when a newer call
// for the same field superseded this one or the lookup failed.
type Resolution struct {
	Location    request.LocationSpec
	Coordinates *request.Coordinates
	Applied     bool
}

type Resolver struct {
	store     *draftstore.Store
	places    shared.PlaceProvider
	directory shared.Directory
	clock     clock.Clock
	debounce  time.Duration
	logger    *slog.Logger

	seq   *token.Sequencer
	loads singleflight.Group

	mu     sync.RWMutex
	saved  map[string]shared.SavedLocationSnapshot
	loaded bool
}

func NewResolver(
	store *draftstore.Store,
	places shared.PlaceProvider,
	directory shared.Directory,
	clk clock.Clock,
	cfg config.ComposerConfig,
	logger *slog.Logger,
) *Resolver {
	return &Resolver{
		store:     store,
		places:    places,
		directory: directory,
		clock:     clk,
		debounce:  cfg.PredictionDebounce,
		logger:    logger,
		seq:       token.NewSequencer(),
	}
}

func predictionKey(f request.LocationField) string { return "predictions/" + f.String() }
func resolveKey(f request.LocationField) string    { return "resolve/" + f.String() }

// SearchPredictions waits for the debounce interval and then asks the place
// provider for candidates. It reports whether its result reached the draft.
func (r *Resolver) SearchPredictions(ctx context.Context, field request.LocationField, query string) (bool, error) {
	if !field.IsValid() {
		return false, errs.Mark(ErrUnknownField, errs.ErrValidation)
	}
	tok := r.seq.Next(predictionKey(field))

	query = strings.TrimSpace(query)
	if query == "" {
		return r.seq.Guard(tok, func() {
			r.store.SetPredictions(field, nil)
		}), nil
	}

	latest, err := r.wait(ctx, tok)
	if err != nil || !latest {
		return false, err
	}

	predictions, err := r.places.Autocomplete(ctx, query)
	if err != nil {
		r.logger.Warn("place autocomplete failed", "field", field, "error", err)
		r.seq.Guard(tok, func() {
			r.store.SetFieldError(request.FieldFor(field), msgSearchFailed)
			r.store.Notify(request.FieldFor(field), msgSearchFailed)
		})
		return false, nil
	}

	applied := r.seq.Guard(tok, func() {
		r.store.SetPredictions(field, predictions)
		r.store.ClearFieldError(request.FieldFor(field))
	})
	if !applied {
		r.logger.Debug("discarded superseded predictions", "field", field, "gen", tok.Gen)
	}
	return applied, nil
}

// Resolve applies sel to field. Saved locations come from the directory with
// no geocoding; descriptions are geocoded.
func (r *Resolver) Resolve(ctx context.Context, field request.LocationField, sel Selection) (Resolution, error) {
	if !field.IsValid() {
		return Resolution{}, errs.Mark(ErrUnknownField, errs.ErrValidation)
	}
	if !sel.IsSaved() && sel.Description == "" {
		return Resolution{}, errs.Mark(ErrEmptySelection, errs.ErrValidation)
	}

	// A pick ends typing: suggestions still in flight must not land afterwards.
	r.seq.Invalidate(predictionKey(field))
	r.store.SetPredictions(field, nil)
	tok := r.seq.Next(resolveKey(field))

	if sel.IsSaved() {
		return r.resolveSaved(ctx, tok, field, sel.SavedID), nil
	}
	return r.resolveDescription(ctx, tok, field, sel.Description), nil
}

func (r *Resolver) resolveSaved(ctx context.Context, tok token.Token, field request.LocationField, id string) Resolution {
	if err := r.ensureSaved(ctx); err != nil {
		r.seq.Guard(tok, func() {
			r.store.SetFieldError(request.FieldFor(field), msgDirectoryError)
		})
		return Resolution{}
	}

	r.mu.RLock()
	snap, ok := r.saved[id]
	r.mu.RUnlock()
	if !ok {
		r.seq.Guard(tok, func() {
			r.store.SetFieldError(request.FieldFor(field), msgUnknownSaved)
		})
		return Resolution{}
	}

	spec := request.SavedLocation{ID: snap.ID}
	applied := r.seq.Guard(tok, func() {
		_ = r.store.SetLocation(field, spec)
	})
	return Resolution{Location: spec, Coordinates: snap.Coordinates, Applied: applied}
}

func (r *Resolver) resolveDescription(ctx context.Context, tok token.Token, field request.LocationField, description string) Resolution {
	coords, err := r.places.Geocode(ctx, description)
	if err != nil {
		r.logger.Warn("geocode failed", "field", field, "error", err)
		r.seq.Guard(tok, func() {
			r.store.SetFieldError(request.FieldFor(field), msgLookupFailed)
			r.store.Notify(request.FieldFor(field), msgLookupFailed)
		})
		return Resolution{}
	}

	spec := request.NewResolvedLocation(description, coords)
	applied := r.seq.Guard(tok, func() {
		_ = r.store.SetLocation(field, spec)
	})
	if !applied {
		r.logger.Debug("discarded superseded geocode", "field", field, "gen", tok.Gen)
	}
	return Resolution{Location: spec, Coordinates: spec.Coordinates, Applied: applied}
}

// SetManualAddress stores what the user is typing as an unresolved address.
// Resolves still in flight for the field are discarded.
func (r *Resolver) SetManualAddress(field request.LocationField, address string) error {
	if !field.IsValid() {
		return errs.Mark(ErrUnknownField, errs.ErrValidation)
	}
	tok := r.seq.Next(resolveKey(field))
	r.seq.Guard(tok, func() {
		_ = r.store.SetLocation(field, request.NewManualLocation(address))
	})
	return nil
}

// LoadSavedLocations fetches the saved-location directory for this session.
// A failure leaves a notice and an empty list.
func (r *Resolver) LoadSavedLocations(ctx context.Context) []shared.SavedLocationSnapshot {
	if err := r.ensureSaved(ctx); err != nil {
		return nil
	}
	return r.SavedLocations()
}

func (r *Resolver) SavedLocations() []shared.SavedLocationSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]shared.SavedLocationSnapshot, 0, len(r.saved))
	for _, s := range r.saved {
		out = append(out, s)
	}
	sortSaved(out)
	return out
}

func (r *Resolver) ensureSaved(ctx context.Context) error {
	r.mu.RLock()
	loaded := r.loaded
	r.mu.RUnlock()
	if loaded {
		return nil
	}

	_, err, _ := r.loads.Do("saved", func() (any, error) {
		list, err := r.directory.ListSavedLocations(ctx)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]shared.SavedLocationSnapshot, len(list))
		for _, s := range list {
			byID[s.ID] = s
		}
		r.mu.Lock()
		r.saved, r.loaded = byID, true
		r.mu.Unlock()
		return nil, nil
	})
	if err != nil {
		r.logger.Warn("saved location directory failed", "error", err)
		r.store.Notify(request.KeyLocation, msgDirectoryError)
		return errs.Mark(err, errs.ErrTransientNetwork)
	}
	return nil
}

// wait blocks for the debounce interval and reports whether tok survived it.
func (r *Resolver) wait(ctx context.Context, tok token.Token) (bool, error) {
	select {
	case <-r.clock.After(r.debounce):
		return r.seq.IsLatest(tok), nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
