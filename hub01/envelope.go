package hub01

import (
	"encoding/json"
	"fmt"
)

// Meta is the pagination block of a list envelope. The SDK decodes it for
// callers but never acts on it; requesting further pages is the caller's
// responsibility.
type Meta struct {
	CurrentPage int `json:"current_page"`
	From        int `json:"from"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	To          int `json:"to"`
	Total       int `json:"total"`
}

// Page is the {data, meta} envelope returned by paginated endpoints.
type Page[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// validator is implemented by models that check required fields and
// normalize nil collections after decoding.
type validator interface {
	validate() error
}

// unmarshalData decodes a single-resource {data: {...}} envelope into dst
// and runs its field validation.
func unmarshalData(raw []byte, dst any) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("hub01: failed to decode response envelope: %w", err)
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("hub01: response envelope has no data field")
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return fmt.Errorf("hub01: failed to decode resource: %w", err)
	}
	if v, ok := dst.(validator); ok {
		return v.validate()
	}
	return nil
}

// unmarshalList decodes a {data: [...]} envelope without pagination meta.
func unmarshalList[T any](raw []byte) ([]T, error) {
	var env struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("hub01: failed to decode response envelope: %w", err)
	}
	if env.Data == nil {
		env.Data = []T{}
	}
	for i := range env.Data {
		if v, ok := any(&env.Data[i]).(validator); ok {
			if err := v.validate(); err != nil {
				return nil, err
			}
		}
	}
	return env.Data, nil
}

// unmarshalPage decodes a paginated {data, meta} envelope.
func unmarshalPage[T any](raw []byte) (*Page[T], error) {
	var page Page[T]
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("hub01: failed to decode paginated response: %w", err)
	}
	if page.Data == nil {
		page.Data = []T{}
	}
	for i := range page.Data {
		if v, ok := any(&page.Data[i]).(validator); ok {
			if err := v.validate(); err != nil {
				return nil, err
			}
		}
	}
	return &page, nil
}
