package xtream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://example.com:8080", "user", "pass")

	if client.BaseURL != "http://example.com:8080" {
		t.Errorf("expected BaseURL 'http://example.com:8080', got %q", client.BaseURL)
	}
	if client.Username != "user" {
		t.Errorf("expected Username 'user', got %q", client.Username)
	}
	if client.Password != "pass" {
		t.Errorf("expected Password 'pass', got %q", client.Password)
	}
	if client.HTTPClient == nil {
		t.Error("expected HTTPClient to be set")
	}
}

func TestNewClient_TrailingSlash(t *testing.T) {
	client := NewClient("http://example.com:8080/", "user", "pass")

	if client.BaseURL != "http://example.com:8080" {
		t.Errorf("expected trailing slash to be removed, got %q", client.BaseURL)
	}
}

func TestClient_GetAuthInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/player_api.php" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("username") != "user" {
			t.Errorf("unexpected username: %s", r.URL.Query().Get("username"))
		}
		if r.URL.Query().Get("password") != "pass" {
			t.Errorf("unexpected password: %s", r.URL.Query().Get("password"))
		}
		if r.URL.Query().Has("action") {
			t.Errorf("auth check must not send an action, got %s", r.URL.Query().Get("action"))
		}

		json.NewEncoder(w).Encode(map[string]any{
			"user_info": map[string]any{
				"username": "user",
				"auth":     1,
				"status":   "Active",
				"exp_date": "1924992000",
			},
			"server_info": map[string]any{
				"url":  "example.com",
				"port": "8080",
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass")

	info, err := client.GetAuthInfo(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !info.Authenticated() {
		t.Error("expected account to be authenticated")
	}
	if info.UserInfo.ExpirationTime().IsZero() {
		t.Error("expected expiration time to be set")
	}
	if info.ServerInfo.Port.Int() != 8080 {
		t.Errorf("expected port 8080, got %d", info.ServerInfo.Port.Int())
	}
}

func TestClient_GetAuthInfo_MissingUserInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"server_info": map[string]any{}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "wrong")

	info, err := client.GetAuthInfo(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Authenticated() {
		t.Error("expected response without user_info to be unauthenticated")
	}
}

func TestClient_GetLiveCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("action"); got != "get_live_categories" {
			t.Errorf("unexpected action: %s", got)
		}
		w.Write([]byte(`[
			{"category_id": "1", "category_name": "News"},
			{"category_id": 2, "category_name": "Sports"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass")

	categories, err := client.GetLiveCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].CategoryID.String() != "1" || categories[0].CategoryName != "News" {
		t.Errorf("unexpected first category: %+v", categories[0])
	}
	if categories[1].CategoryID.String() != "2" {
		t.Errorf("expected numeric category_id to decode as string, got %q", categories[1].CategoryID)
	}
}

func TestClient_GetLiveStreams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("action"); got != "get_live_streams" {
			t.Errorf("unexpected action: %s", got)
		}
		w.Write([]byte(`[
			{"stream_id": 42, "name": "BBC One", "epg_channel_id": "bbc1.uk",
			 "stream_icon": "http://x/bbc.png", "category_id": "1"},
			{"stream_id": "43", "name": "BBC Two", "category_id": 1}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass")

	streams, err := client.GetLiveStreams(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(streams) != 2 {
		t.Fatalf("expected 2 streams, got %d", len(streams))
	}
	if streams[0].StreamID.Int() != 42 {
		t.Errorf("expected stream_id 42, got %d", streams[0].StreamID.Int())
	}
	if streams[1].StreamID.Int() != 43 {
		t.Errorf("expected string stream_id to decode, got %d", streams[1].StreamID.Int())
	}
}

func TestClient_GetLiveStreams_CategoryFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("category_id"); got != "7" {
			t.Errorf("expected category_id=7, got %q", got)
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass")

	if _, err := client.GetLiveStreams(context.Background(), "7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_GetLiveStreams_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>panel down</html>`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass")

	if _, err := client.GetLiveStreams(context.Background(), ""); err == nil {
		t.Fatal("expected a decode error for non-JSON body")
	}
}

func TestClient_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass")

	if _, err := client.GetLiveCategories(context.Background()); err == nil {
		t.Fatal("expected an error for non-200 status")
	}
}

func TestClient_LiveStreamURL(t *testing.T) {
	tests := []struct {
		name      string
		base      string
		streamID  int64
		extension string
		want      string
	}{
		{
			name:     "default extension",
			base:     "http://example.com:8080",
			streamID: 42,
			want:     "http://example.com:8080/live/u/p/42.ts",
		},
		{
			name:      "m3u8 extension",
			base:      "http://example.com:8080",
			streamID:  42,
			extension: "m3u8",
			want:      "http://example.com:8080/live/u/p/42.m3u8",
		},
		{
			name:     "bare host",
			base:     "example.com",
			streamID: 42,
			want:     "example.com/live/u/p/42.ts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.base, "u", "p")
			if got := client.LiveStreamURL(tt.streamID, tt.extension); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
