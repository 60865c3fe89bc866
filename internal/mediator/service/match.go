package service

import (
	"context"
	"reflect"

	"golang.org/x/sync/errgroup"

	instrument "paymediator/internal/instrument/models"
	"paymediator/internal/mediator/models"
	platformstrings "paymediator/pkg/platform/strings"
)

// MatchPolicy decides whether a stored instrument can serve a request.
type MatchPolicy func(req *models.PaymentRequest, rec *instrument.Record) bool

// DefaultMatchPolicy accepts an instrument when at least one method data
// entry both names a method the instrument enables and is satisfied by the
// instrument's capabilities. An instrument with no enabled methods never
// matches.
//
// A method data entry is satisfied when every key it shares with the
// capabilities agrees: lists must overlap, anything else must be equal.
// Keys the instrument does not declare do not constrain it.
func DefaultMatchPolicy(req *models.PaymentRequest, rec *instrument.Record) bool {
	for _, md := range req.MethodData {
		if !platformstrings.Overlaps(md.SupportedMethods, rec.EnabledMethods) {
			continue
		}
		if capabilitiesSatisfy(rec.Capabilities, md.Data) {
			return true
		}
	}
	return false
}

func capabilitiesSatisfy(capabilities, wanted map[string]any) bool {
	for key, want := range wanted {
		have, ok := capabilities[key]
		if !ok {
			continue
		}
		wantList, wantIsList := want.([]any)
		haveList, haveIsList := have.([]any)
		switch {
		case wantIsList && haveIsList:
			if !overlapsAny(wantList, haveList) {
				return false
			}
		case wantIsList:
			if !containsAny(wantList, have) {
				return false
			}
		case haveIsList:
			if !containsAny(haveList, want) {
				return false
			}
		default:
			if !reflect.DeepEqual(want, have) {
				return false
			}
		}
	}
	return true
}

func containsAny(list []any, v any) bool {
	for _, item := range list {
		if reflect.DeepEqual(item, v) {
			return true
		}
	}
	return false
}

func overlapsAny(a, b []any) bool {
	for _, item := range a {
		if containsAny(b, item) {
			return true
		}
	}
	return false
}

// match runs the policy over every registered handler concurrently and
// flattens the results in handler enumeration order.
func (s *Service) match(ctx context.Context, req *models.PaymentRequest) ([]instrument.Match, error) {
	urls, err := s.registrations.AllRegistrations(ctx)
	if err != nil {
		return nil, err
	}

	perHandler := make([][]instrument.Match, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.matchConcurrency)
	for i, url := range urls {
		g.Go(func() error {
			found, err := s.instruments.Match(gctx, url, func(rec *instrument.Record) bool {
				return s.policy(req, rec)
			})
			if err != nil {
				return err
			}
			perHandler[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []instrument.Match
	for _, found := range perHandler {
		out = append(out, found...)
	}
	return out, nil
}
