package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lemap/hubwatch/pkg/types"
	"github.com/matryer/is"
)

func TestGetAlerts(t *testing.T) {
	is := is.New(t)

	var path, query, auth string

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, query, auth = r.URL.Path, r.URL.Query().Get("hub"), r.Header.Get("Authorization")
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(alertsResponse))
	}))
	defer s.Close()

	c := New(s.URL, "dashboard")

	result, err := c.GetAlerts(context.Background(), "Delhi")
	is.NoErr(err)
	is.Equal(path, "/api/v0/alerts")
	is.Equal(query, "Delhi")
	is.Equal(auth, "Bearer dashboard")
	is.Equal(len(result), 1)
	is.Equal(result[0].EventType, types.EventType("ORDER_DELAYED"))
	is.Equal(result[0].Timestamp.Year(), 2024)
}

func TestGetAlertsWithInvalidHub(t *testing.T) {
	is := is.New(t)

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Invalid hub. Must be one of: Delhi, Mumbai"}`))
	}))
	defer s.Close()

	_, err := New(s.URL, "").GetAlerts(context.Background(), "Banglore")
	is.True(errors.Is(err, ErrInvalidHub))
}

func TestGetHubStatus(t *testing.T) {
	is := is.New(t)

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"Delhi":"red","Mumbai":"green"}`))
	}))
	defer s.Close()

	status, err := New(s.URL, "").GetHubStatus(context.Background())
	is.NoErr(err)
	is.Equal(status["Delhi"], types.HubUnhealthy)
	is.Equal(status["Mumbai"], types.HubHealthy)
}

func TestServerErrorIsReturned(t *testing.T) {
	is := is.New(t)

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer s.Close()

	_, err := New(s.URL, "").GetEvents(context.Background(), "")
	is.True(err != nil)
	is.True(!errors.Is(err, ErrInvalidHub))
}

const alertsResponse string = `[{"id":1,"hub":"Delhi","event_type":"ORDER_DELAYED","message":"Spike detected: ORDER_DELAYED events at Delhi","timestamp":"2024-03-01T10:00:00Z"}]`
