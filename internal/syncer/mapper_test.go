package syncer

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/shaiso/Syncline/internal/domain"
)

func TestMapRow_AllFields(t *testing.T) {
	row := domain.CustomerRow{
		"id":         int64(1),
		"first_name": "Ann",
		"last_name":  "Lee",
		"email":      "a@x.com",
	}

	payload, err := MapRow(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payload.ID != 1 {
		t.Errorf("expected id 1, got %d", payload.ID)
	}
	if payload.FirstName == nil || *payload.FirstName != "Ann" {
		t.Errorf("expected firstName Ann, got %v", payload.FirstName)
	}
	if payload.LastName == nil || *payload.LastName != "Lee" {
		t.Errorf("expected lastName Lee, got %v", payload.LastName)
	}
	if payload.Email == nil || *payload.Email != "a@x.com" {
		t.Errorf("expected email a@x.com, got %v", payload.Email)
	}
}

func TestMapRow_IDCoercion(t *testing.T) {
	cases := []struct {
		name string
		raw  any
	}{
		{"int64", int64(42)},
		{"int32", int32(42)},
		{"int", 42},
		{"float64", float64(42)},
		{"string", "42"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := MapRow(domain.CustomerRow{"id": tc.raw})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if payload.ID != 42 {
				t.Errorf("expected id 42, got %d", payload.ID)
			}
		})
	}
}

func TestMapRow_InvalidID(t *testing.T) {
	cases := []struct {
		name string
		raw  any
	}{
		{"unparseable string", "abc"},
		{"nil", nil},
		{"bool", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := MapRow(domain.CustomerRow{"id": tc.raw})
			if payload != nil {
				t.Errorf("expected nil payload, got %+v", payload)
			}

			var invalid *InvalidRecordError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidRecordError, got %v", err)
			}
			if invalid.Column != "id" {
				t.Errorf("expected column id, got %q", invalid.Column)
			}
		})
	}
}

func TestMapRow_NullFieldsStayNull(t *testing.T) {
	payload, err := MapRow(domain.CustomerRow{"id": int64(7)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payload.FirstName != nil || payload.LastName != nil || payload.Email != nil {
		t.Errorf("expected nil string fields, got %+v", payload)
	}
}

func TestMapRow_NonStringFieldCoerced(t *testing.T) {
	payload, err := MapRow(domain.CustomerRow{
		"id":         int64(7),
		"first_name": int64(5),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payload.FirstName == nil || *payload.FirstName != "5" {
		t.Errorf("expected firstName \"5\", got %v", payload.FirstName)
	}
}

// Маппинг детерминирован: два вызова над одной строкой дают
// структурно равные payloads (скрытого состояния нет).
func TestMapRow_Deterministic(t *testing.T) {
	row := domain.CustomerRow{
		"id":         "42",
		"first_name": "Ann",
		"email":      "a@x.com",
	}

	first, err := MapRow(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := MapRow(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected equal payloads, got %+v and %+v", first, second)
	}
}

func TestCrmPayload_JSONShape(t *testing.T) {
	full, err := MapRow(domain.CustomerRow{
		"id":         int64(1),
		"first_name": "Ann",
		"last_name":  "Lee",
		"email":      "a@x.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body, err := json.Marshal(full)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":1,"firstName":"Ann","lastName":"Lee","email":"a@x.com"}`
	if string(body) != want {
		t.Errorf("expected body %s, got %s", want, body)
	}

	// Отсутствующие поля сериализуются как null, не пропадают.
	sparse, err := MapRow(domain.CustomerRow{"id": int64(7)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body, err = json.Marshal(sparse)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want = `{"id":7,"firstName":null,"lastName":null,"email":null}`
	if string(body) != want {
		t.Errorf("expected body %s, got %s", want, body)
	}
}

func TestCustomerID(t *testing.T) {
	id, err := CustomerID(domain.CustomerRow{"id": "15", "first_name": "Bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 15 {
		t.Errorf("expected id 15, got %d", id)
	}

	if _, err := CustomerID(domain.CustomerRow{"id": "abc"}); err == nil {
		t.Error("expected error for unparseable id")
	}
}
