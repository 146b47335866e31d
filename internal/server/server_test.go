package server_test

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/JaimeStill/catalog-console/internal/config"
	"github.com/JaimeStill/catalog-console/internal/server"
	"github.com/JaimeStill/catalog-console/pkg/lifecycle"
	"github.com/JaimeStill/catalog-console/pkg/logging"
)

func testConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            0,
		ReadTimeout:     "5s",
		WriteTimeout:    "5s",
		IdleTimeout:     "5s",
		ShutdownTimeout: "5s",
	}
}

func TestStart_ServesAndShutsDown(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	lc := lifecycle.New()
	srv := server.New(testConfig(), handler, logging.Discard())
	if err := srv.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	resp, err := http.Get("http://" + srv.Addr() + "/")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if string(body) != "OK" {
		t.Errorf("body = %q, want OK", body)
	}

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	if _, err := http.Get("http://" + srv.Addr() + "/"); err == nil {
		t.Error("server still accepting connections after shutdown")
	}
}

func TestStart_ListenError(t *testing.T) {
	cfg := testConfig()
	cfg.Host = "256.0.0.1"

	srv := server.New(cfg, http.NotFoundHandler(), logging.Discard())
	if err := srv.Start(lifecycle.New()); err == nil {
		t.Error("expected listen error")
	}
}
