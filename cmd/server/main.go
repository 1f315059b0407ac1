package main

import (
    "compress/gzip"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "log"
    "net/http"
    "os"
    "os/signal"
    "strings"
    "sync"
    "syscall"
    "time"

    "stocktracker/internal/chat"
    "stocktracker/internal/config"
    "stocktracker/internal/feed"
    "stocktracker/internal/httpx"
    "stocktracker/internal/market"
    "stocktracker/internal/provider"
    "stocktracker/internal/provider/gemini"
    "stocktracker/internal/provider/openai"
)

type quotesResponse struct {
    Quotes []market.Quote `json:"quotes"`
}

type indicesResponse struct {
    Indices []market.Index `json:"indices"`
}

func main() {
    // Config
    cfgPath := os.Getenv("CONFIG_FILE")
    cfg, err := config.Load(cfgPath)
    if err != nil { log.Fatalf("config: %v", err) }
    port := cfg.Server.Port

    board := market.NewBoard()

    completer, err := newCompleter(cfg.Chat)
    if err != nil { log.Fatalf("chat provider: %v", err) }
    gateway := chat.NewGateway(completer, board)

    mux := http.NewServeMux()
    mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        _, _ = w.Write([]byte("ok"))
    })
    mux.Handle("/api/quotes", withJSONHeaders(withGzip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        handleQuotes(w, r, board)
    }))))
    mux.Handle("/api/indices", withJSONHeaders(withGzip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        handleIndices(w, r, board)
    }))))
    // No gzip on the chat route: frames must flush as they are produced.
    mux.Handle("/api/chat", gateway)
    if cfg.Feed.Enabled {
        mux.Handle("/api/stream/quotes", &feed.Handler{
            Board:    board,
            Interval: time.Duration(cfg.Feed.IntervalSec) * time.Second,
        })
    }

    srv := &http.Server{
        Addr:              ":" + port,
        Handler:           withCORS(recoverPanic(limitBody(mux))),
        ReadHeaderTimeout: 5 * time.Second,
        ReadTimeout:       15 * time.Second,
        // No WriteTimeout: chat streams and quote feeds have no deadline.
        IdleTimeout: 60 * time.Second,
    }

    go func() {
        log.Printf("server listening on :%s (chat provider: %s)", port, completer.Name())
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatalf("server: %v", err)
        }
    }()

    // graceful shutdown
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()
    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    _ = srv.Shutdown(shutdownCtx)
}

// newCompleter builds the configured completion backend.
func newCompleter(cfg config.Chat) (provider.Completer, error) {
    switch cfg.Provider {
    case "gemini":
        return gemini.New(context.Background(), cfg.APIKey, cfg.Model)
    case "openai", "":
        if cfg.APIKey == "" {
            log.Println("warning: chat.provider=openai but OPENAI_API_KEY not set")
        }
        opts := []openai.Option{openai.WithHTTPClient(httpx.New(0).HTTP)}
        if cfg.Endpoint != "" { opts = append(opts, openai.WithEndpoint(cfg.Endpoint)) }
        if cfg.Model != "" { opts = append(opts, openai.WithModel(cfg.Model)) }
        return openai.New(cfg.APIKey, opts...), nil
    default:
        return nil, fmt.Errorf("unknown chat provider %q", cfg.Provider)
    }
}

func handleQuotes(w http.ResponseWriter, r *http.Request, board *market.Board) {
    if r.Method != http.MethodGet {
        http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
        return
    }
    // Empty symbols means the whole catalog; unknown symbols are skipped.
    symbols := splitCSV(r.URL.Query().Get("symbols"))
    resp := quotesResponse{Quotes: board.Quotes(symbols)}
    w.WriteHeader(http.StatusOK)
    enc := json.NewEncoder(w)
    enc.SetEscapeHTML(false)
    enc.Encode(resp)
}

func handleIndices(w http.ResponseWriter, r *http.Request, board *market.Board) {
    if r.Method != http.MethodGet {
        http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
        return
    }
    resp := indicesResponse{Indices: board.Indices()}
    w.WriteHeader(http.StatusOK)
    enc := json.NewEncoder(w)
    enc.SetEscapeHTML(false)
    enc.Encode(resp)
}

func withJSONHeaders(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json; charset=utf-8")
        next.ServeHTTP(w, r)
    })
}

func withCORS(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        // Basic CORS for browser usage; adjust as needed.
        w.Header().Set("Access-Control-Allow-Origin", "*")
        w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
        w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
        if r.Method == http.MethodOptions {
            w.WriteHeader(http.StatusNoContent)
            return
        }
        next.ServeHTTP(w, r)
    })
}

// withGzip compresses response when client supports gzip.
func withGzip(next http.Handler) http.Handler {
    var gzPool = sync.Pool{New: func() any {
        // Prefer best speed to reduce CPU usage since payloads are JSON
        w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
        return w
    }}
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
            next.ServeHTTP(w, r)
            return
        }
        gz := gzPool.Get().(*gzip.Writer)
        gz.Reset(w)
        defer func() {
            _ = gz.Close()
            gz.Reset(io.Discard)
            gzPool.Put(gz)
        }()
        w.Header().Set("Content-Encoding", "gzip")
        w.Header().Add("Vary", "Accept-Encoding")
        gw := gzipResponseWriter{ResponseWriter: w, Writer: gz}
        next.ServeHTTP(gw, r)
    })
}

type gzipResponseWriter struct {
    http.ResponseWriter
    Writer io.Writer
}

func (g gzipResponseWriter) Write(b []byte) (int, error) {
    return g.Writer.Write(b)
}

// limitBody caps request body size to avoid memory abuse.
func limitBody(next http.Handler) http.Handler {
    const maxBody = 1 << 20 // 1MB
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.Method == http.MethodPost && r.Body != nil {
            r.Body = http.MaxBytesReader(w, r.Body, maxBody)
        }
        next.ServeHTTP(w, r)
    })
}

// recoverPanic protects handlers from panics.
func recoverPanic(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        defer func() {
            if rec := recover(); rec != nil {
                http.Error(w, "internal server error", http.StatusInternalServerError)
            }
        }()
        next.ServeHTTP(w, r)
    })
}

func splitCSV(s string) []string {
    if strings.TrimSpace(s) == "" { return nil }
    parts := strings.Split(s, ",")
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        p = strings.TrimSpace(p)
        if p != "" { out = append(out, p) }
    }
    return out
}
