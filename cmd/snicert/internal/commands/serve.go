package commands

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/cors"
	httpmiddleware "github.com/wolfeidau/snicert/internal/http"
	"github.com/wolfeidau/snicert/internal/issuer"
	"github.com/wolfeidau/snicert/internal/logger"
	"github.com/wolfeidau/snicert/internal/telemetry"
)

type ServeCmd struct {
	// Server configuration
	Listen string `help:"HTTPS server listen address" default:"0.0.0.0:8443" env:"SNICERT_LISTEN"`

	// Issuance behaviour
	Cache bool `help:"reuse issued certificates per hostname until they expire" default:"false" env:"SNICERT_CACHE"`

	// CORS configuration
	CORSOrigins []string `help:"allowed CORS origins for the info endpoints" default:"*" env:"SNICERT_CORS_ORIGINS"`

	// Development and operational modes
	Tracing bool `help:"enable tracing" default:"false" env:"SNICERT_TRACING"`

	Keys KeyFlags `embed:""`
}

func (c *ServeCmd) Run(globals *Globals) error {
	log := logger.Setup(globals.Debug)
	ctx := context.Background()

	log.Info().Str("version", globals.Version).Bool("debug", globals.Debug).Msg("Starting snicert server")

	if c.Tracing {
		log.Info().Msg("Tracing is enabled")
		shutdown, err := telemetry.InitTelemetry(ctx, "snicert-server", globals.Version)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize telemetry, continuing without metrics")
			shutdown = func(ctx context.Context) error { return nil }
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Failed to shutdown telemetry")
			}
		}()
	}

	kp, err := c.Keys.keyPair()
	if err != nil {
		return err
	}

	var opts []issuer.Option
	if c.Cache {
		opts = append(opts, issuer.WithCache())
	}
	iss := issuer.New(kp, opts...)

	fingerprint, err := iss.Fingerprint()
	if err != nil {
		return err
	}
	tlsa, err := issuer.TLSARecord(kp.Public)
	if err != nil {
		return err
	}

	log.Info().Str("spki_fingerprint", fingerprint).Msg("Signing key loaded")

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.HandleFunc("/fingerprint", func(w http.ResponseWriter, r *http.Request) {
		fp, err := iss.Fingerprint()
		if err != nil {
			http.Error(w, "fingerprint unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"spki_sha256": fp,
			"tlsa":        tlsa,
		})
	})

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: c.CORSOrigins,
		AllowedMethods: []string{http.MethodGet},
	})

	handler := httpmiddleware.RequestLogger(log)(
		httpmiddleware.ClientIPMiddleware()(
			corsMiddleware.Handler(mux)))

	srv := configureHTTPServer(c.Listen, handler)
	srv.TLSConfig = &tls.Config{
		GetCertificate: iss.GetCertificate,
		MinVersion:     tls.VersionTLS12,
	}

	log.Info().Str("listen", c.Listen).Bool("cache", c.Cache).Msg("Serving HTTPS")

	return srv.ListenAndServeTLS("", "")
}
