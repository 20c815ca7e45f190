package trip

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SystAttic/TraversiumSocialService/internal/platform/tenant"
)

func TestMediaExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/v1/media/100":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"mediaId":100,"uploader":"owner1"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	ctx := context.Background()

	if !c.MediaExists(ctx, 100, "tok") {
		t.Fatal("expected media 100 to exist")
	}
	if c.MediaExists(ctx, 999, "tok") {
		t.Fatal("expected media 999 to be missing")
	}
}

func TestMediaExists_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New(srv.URL, nil)
	if c.MediaExists(context.Background(), 100, "tok") {
		t.Fatal("expected false when the trip service is unreachable")
	}
}

func TestMediaOwner(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"mediaId":100,"uploader":"owner1"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	owner, ok := c.MediaOwner(context.Background(), 100, "tok")
	if !ok {
		t.Fatal("expected owner resolved")
	}
	if owner != "owner1" {
		t.Fatalf("expected owner1, got %q", owner)
	}
}

func TestMediaOwner_EmptyUploader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"mediaId":100,"uploader":""}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	if _, ok := c.MediaOwner(context.Background(), 100, "tok"); ok {
		t.Fatal("expected unresolved owner for empty uploader")
	}
}

func TestMediaOwner_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	if _, ok := c.MediaOwner(context.Background(), 100, "tok"); ok {
		t.Fatal("expected unresolved owner for malformed payload")
	}
}

func TestOutboundHeaders(t *testing.T) {
	var gotAuth, gotTenant string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotTenant = r.Header.Get(tenant.Header)
		_, _ = w.Write([]byte(`{"mediaId":100,"uploader":"owner1"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	ctx := tenant.WithTenant(context.Background(), "acme")
	if !c.MediaExists(ctx, 100, "tok") {
		t.Fatal("expected media to exist")
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("expected bearer credential forwarded, got %q", gotAuth)
	}
	if gotTenant != "acme" {
		t.Fatalf("expected tenant header forwarded, got %q", gotTenant)
	}
}

func TestNoCredentialNoHeader(t *testing.T) {
	var hadAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`{"mediaId":100,"uploader":"owner1"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	c.MediaExists(context.Background(), 100, "")
	if hadAuth {
		t.Fatal("expected no Authorization header for anonymous calls")
	}
}
