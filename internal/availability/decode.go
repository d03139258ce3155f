package availability

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mmcdole/parkwatch/internal/domain"
)

// availabilityDTO mirrors the detector state file served by the backend.
// Pointers distinguish a missing field from an explicit zero.
type availabilityDTO struct {
	AvailableSpaces *int `json:"available_spaces"`
	Total           *int `json:"total"`
	OccupiedSpaces  *int `json:"occupied_spaces"`
	UnknownSpaces   *int `json:"unknown_spaces"`
}

// Decode parses an availability response body into a Snapshot.
// available_spaces and total are required and must be non-negative.
func Decode(body []byte) (domain.Snapshot, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return domain.Snapshot{}, &domain.DecodeError{Err: errors.New("empty response body")}
	}

	var dto availabilityDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domain.Snapshot{}, &domain.DecodeError{Field: typeErr.Field, Err: fmt.Errorf("expected %s, got %s", typeErr.Type, typeErr.Value)}
		}
		return domain.Snapshot{}, &domain.DecodeError{Err: err}
	}

	available, err := required("available_spaces", dto.AvailableSpaces)
	if err != nil {
		return domain.Snapshot{}, err
	}
	total, err := required("total", dto.Total)
	if err != nil {
		return domain.Snapshot{}, err
	}
	occupied, err := optional("occupied_spaces", dto.OccupiedSpaces)
	if err != nil {
		return domain.Snapshot{}, err
	}
	unknown, err := optional("unknown_spaces", dto.UnknownSpaces)
	if err != nil {
		return domain.Snapshot{}, err
	}

	return domain.Snapshot{
		AvailableSpaces: available,
		TotalSpaces:     total,
		OccupiedSpaces:  occupied,
		UnknownSpaces:   unknown,
	}, nil
}

func required(field string, v *int) (int, error) {
	if v == nil {
		return 0, &domain.DecodeError{Field: field, Err: errors.New("missing field")}
	}
	return optional(field, v)
}

func optional(field string, v *int) (int, error) {
	if v == nil {
		return 0, nil
	}
	if *v < 0 {
		return 0, &domain.DecodeError{Field: field, Err: fmt.Errorf("negative count %d", *v)}
	}
	return *v, nil
}
