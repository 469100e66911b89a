// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package paco

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/pickr/models"
)

// Prefix marks a string as a share code
const Prefix = "p_"

var ErrInvalidCode = errors.New("invalid paco code")

// compactCard is the wire form of a ranked card
type compactCard struct {
	ID       string `json:"i"`
	Content  string `json:"c"`
	Rank     int    `json:"r"`
	Score    int    `json:"s"` // score as 0-100
	Wins     int    `json:"w"`
	Losses   int    `json:"l"`
	ImageURL string `json:"img,omitempty"`
}

// compactData is the wire form of a shared result
type compactData struct {
	Version   string        `json:"v"`
	PackID    string        `json:"p"`
	Timestamp int64         `json:"t"` // unix seconds
	Algorithm string        `json:"a"`
	Rankings  []compactCard `json:"r"`
}

// Encode packs ranking data into a URL-safe share code
func Encode(data models.PacoData) (string, error) {
	compact := compactData{
		Version:   data.Metadata.Version,
		PackID:    data.PackID,
		Timestamp: data.Metadata.Timestamp.Unix(),
		Algorithm: data.Metadata.Algorithm,
		Rankings:  make([]compactCard, len(data.Rankings)),
	}
	if compact.Version == "" {
		compact.Version = models.PacoVersion
	}

	for i, rc := range data.Rankings {
		compact.Rankings[i] = compactCard{
			ID:       rc.ID,
			Content:  rc.Content,
			Rank:     rc.Rank,
			Score:    int(math.Round(rc.Score * 100)),
			Wins:     rc.Wins,
			Losses:   rc.Losses,
			ImageURL: rc.ImageURL,
		}
	}

	raw, err := json.Marshal(compact)
	if err != nil {
		return "", fmt.Errorf("failed to encode share code: %w", err)
	}

	return Prefix + base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode unpacks a share code. Card creation times are not carried by the
// code and come back as the share timestamp.
func Decode(code string) (*models.PacoData, error) {
	if !strings.HasPrefix(code, Prefix) {
		return nil, fmt.Errorf("%w: missing %q prefix", ErrInvalidCode, Prefix)
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(code[len(Prefix):], "="))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	var compact compactData
	if err := json.Unmarshal(raw, &compact); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	// Validate required fields
	if compact.Version == "" || compact.PackID == "" || compact.Rankings == nil {
		return nil, fmt.Errorf("%w: missing required fields", ErrInvalidCode)
	}

	timestamp := time.Unix(compact.Timestamp, 0).UTC()
	rankings := make([]models.RankedCard, len(compact.Rankings))
	for i, c := range compact.Rankings {
		rankings[i] = models.RankedCard{
			Card: models.Card{
				ID:        c.ID,
				Content:   c.Content,
				ImageURL:  c.ImageURL,
				CreatedAt: timestamp,
			},
			Rank:   c.Rank,
			Score:  float64(c.Score) / 100,
			Wins:   c.Wins,
			Losses: c.Losses,
		}
	}

	return &models.PacoData{
		PackID:   compact.PackID,
		Rankings: rankings,
		Metadata: models.PacoMetadata{
			Timestamp: timestamp,
			Version:   compact.Version,
			Algorithm: compact.Algorithm,
		},
	}, nil
}

// Validate reports whether code decodes
func Validate(code string) bool {
	_, err := Decode(code)
	return err == nil
}

// ShareURL builds the public results link for a share code
func ShareURL(code, baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/results/shared?code=" + url.QueryEscape(code)
}

// ExtractFromURL pulls a valid share code out of a results link
func ExtractFromURL(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" {
		return "", false
	}

	code := u.Query().Get("code")
	if code == "" || !Validate(code) {
		return "", false
	}
	return code, true
}

// ShortCode returns the first 8 characters of the code body followed by a
// 2-character checksum
func ShortCode(code string) (string, error) {
	if !Validate(code) {
		return "", ErrInvalidCode
	}

	body := code[len(Prefix):]
	short := body
	if len(short) > 8 {
		short = short[:8]
	}
	return short + checksum(body), nil
}

// checksum is a 31-multiplier 32-bit string hash, in base36, cut to 2
// characters
func checksum(s string) string {
	var hash int32
	for _, r := range s {
		hash = hash<<5 - hash + int32(r)
	}

	abs := int64(hash)
	if abs < 0 {
		abs = -abs
	}

	sum := strconv.FormatInt(abs, 36)
	if len(sum) > 2 {
		sum = sum[:2]
	}
	return sum
}

// EstimateEncodedSize approximates the share code length for data
func EstimateEncodedSize(data models.PacoData) int {
	raw, err := json.Marshal(data)
	if err != nil {
		return 0
	}

	compressed := float64(len(raw)) * 0.7
	return int(math.Ceil(compressed * 1.33))
}
