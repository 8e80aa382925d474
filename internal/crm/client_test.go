package crm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"github.com/shaiso/Syncline/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestClient_SyncCustomer_Success(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// База с path-компонентом: /customers должен добавляться, не заменять.
	client := New(Config{BaseURL: server.URL + "/api"})

	err := client.SyncCustomer(context.Background(), &domain.CrmPayload{
		ID:        1,
		FirstName: strPtr("Ann"),
		LastName:  strPtr("Lee"),
		Email:     strPtr("a@x.com"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("expected POST, got %s", gotMethod)
	}
	if gotPath != "/api/customers" {
		t.Errorf("expected path /api/customers, got %s", gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", gotContentType)
	}

	if id := gjson.GetBytes(gotBody, "id").Int(); id != 1 {
		t.Errorf("expected id 1 in body, got %d", id)
	}
	if v := gjson.GetBytes(gotBody, "firstName").String(); v != "Ann" {
		t.Errorf("expected firstName Ann, got %q", v)
	}
	if v := gjson.GetBytes(gotBody, "lastName").String(); v != "Lee" {
		t.Errorf("expected lastName Lee, got %q", v)
	}
	if v := gjson.GetBytes(gotBody, "email").String(); v != "a@x.com" {
		t.Errorf("expected email a@x.com, got %q", v)
	}
}

func TestClient_SyncCustomer_NullFieldsSerialized(t *testing.T) {
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})

	if err := client.SyncCustomer(context.Background(), &domain.CrmPayload{ID: 7}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	email := gjson.GetBytes(gotBody, "email")
	if !email.Exists() || email.Type != gjson.Null {
		t.Errorf("expected email present as null, got %v", email)
	}
}

func TestClient_SyncCustomer_Rejected(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		client := New(Config{BaseURL: server.URL})
		err := client.SyncCustomer(context.Background(), &domain.CrmPayload{ID: 1})
		server.Close()

		var rejected *RemoteRejectedError
		if !errors.As(err, &rejected) {
			t.Fatalf("status %d: expected RemoteRejectedError, got %v", status, err)
		}
		if rejected.Status != status {
			t.Errorf("expected status %d in error, got %d", status, rejected.Status)
		}
	}
}

func TestClient_SyncCustomer_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	server.Close() // соединение будет отклонено

	client := New(Config{BaseURL: server.URL})
	err := client.SyncCustomer(context.Background(), &domain.CrmPayload{ID: 1})

	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestClient_SyncCustomer_ReadTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, ReadTimeout: 20 * time.Millisecond})
	err := client.SyncCustomer(context.Background(), &domain.CrmPayload{ID: 1})

	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError on timeout, got %v", err)
	}
}
