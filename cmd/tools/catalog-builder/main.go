// cmd/tools/catalog-builder/main.go

// catalog-builder turns a raw scraped card dump into the normalized dataset
// the server loads at startup. The raw dump comes either from a local file
// or from the provider export endpoint.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"card-advisor/internal/catalog"
	"card-advisor/internal/common/logger"
	"card-advisor/internal/models"
)

const fetchTimeout = 30 * time.Second

func main() {
	var (
		inPath  = flag.String("in", "", "path to the raw scraped dataset file")
		url     = flag.String("url", "", "provider export endpoint returning the raw dataset")
		outPath = flag.String("out", "data/transformed_cards.json", "path for the normalized dataset")
	)
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	if (*inPath == "") == (*url == "") {
		zapLog.Fatal("exactly one of -in or -url is required",
			zap.String("in", *inPath), zap.String("url", *url))
	}

	var (
		raw []byte
		err error
	)
	if *inPath != "" {
		raw, err = os.ReadFile(*inPath)
	} else {
		raw, err = fetchRawDataset(context.Background(), *url)
	}
	if err != nil {
		zapLog.Fatal("raw dataset load failed", zap.Error(err))
	}

	var rawDataset models.RawDataset
	if err := json.Unmarshal(raw, &rawDataset); err != nil {
		zapLog.Fatal("raw dataset decode failed", zap.Error(err))
	}

	transformed := models.Dataset{Dataset: make([]models.CardRecord, 0, len(rawDataset.Dataset))}
	for _, card := range rawDataset.Dataset {
		transformed.Dataset = append(transformed.Dataset, catalog.Normalize(card))
	}

	out, err := json.Marshal(transformed)
	if err != nil {
		zapLog.Fatal("dataset encode failed", zap.Error(err))
	}
	if err := os.WriteFile(*outPath, out, 0o644); err != nil {
		zapLog.Fatal("dataset write failed", zap.Error(err))
	}

	zapLog.Info("dataset written",
		zap.String("path", *outPath),
		zap.Int("cards", len(transformed.Dataset)),
	)
}

func fetchRawDataset(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
