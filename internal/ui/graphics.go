package ui

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"valentine/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/qeesung/image2ascii/convert"
)

const (
	artCacheSize    = 64
	artFetchTimeout = 10 * time.Second
	// GIPHY originals can be large; anything past this is not worth
	// turning into a few hundred characters.
	maxImageBytes = 16 << 20
)

// TerminalCapabilities represents how much colour the terminal can show.
type TerminalCapabilities struct {
	Color     bool
	TrueColor bool
}

// DetectTerminalCapabilities inspects the environment for colour support.
func DetectTerminalCapabilities() TerminalCapabilities {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return TerminalCapabilities{}
	}
	colorTerm := os.Getenv("COLORTERM")
	return TerminalCapabilities{
		Color:     true,
		TrueColor: colorTerm == "truecolor" || colorTerm == "24bit",
	}
}

// ArtLoader downloads theme images and renders them as ASCII art. Rendered
// art is memoised per image and size.
type ArtLoader struct {
	client *http.Client
	caps   TerminalCapabilities
	cache  *lru.Cache[string, string]
	fetch  func(ctx context.Context, ref string) (image.Image, error)
}

// NewArtLoader creates a loader. A nil client uses http.DefaultClient.
func NewArtLoader(client *http.Client, caps TerminalCapabilities) (*ArtLoader, error) {
	if client == nil {
		client = http.DefaultClient
	}
	cache, err := lru.New[string, string](artCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create art cache: %w", err)
	}
	a := &ArtLoader{client: client, caps: caps, cache: cache}
	a.fetch = a.download
	return a, nil
}

// Render returns ASCII art for the image at ref sized to width x height
// cells.
func (a *ArtLoader) Render(ctx context.Context, ref string, width, height int) (string, error) {
	key := fmt.Sprintf("%s@%dx%d", ref, width, height)
	if art, ok := a.cache.Get(key); ok {
		return art, nil
	}

	img, err := a.fetch(ctx, ref)
	if err != nil {
		return "", err
	}

	art := convertToASCII(img, width, height, a.caps.Color)
	a.cache.Add(key, art)
	return art, nil
}

func (a *ArtLoader) download(ctx context.Context, ref string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image request failed with status %d", resp.StatusCode)
	}

	// image/gif decodes only the first frame here, which is what we want.
	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// convertToASCII converts an image to ASCII art, coloured when the terminal
// allows it.
func convertToASCII(img image.Image, targetWidth, targetHeight int, colored bool) string {
	converter := convert.NewImageConverter()

	opts := convert.DefaultOptions
	opts.FixedWidth = targetWidth
	opts.FixedHeight = targetHeight
	opts.FitScreen = false
	opts.Colored = colored
	opts.Ratio = 0.5

	return strings.TrimRight(converter.Image2ASCIIString(img, &opts), "\n")
}

func loadArtCmd(loader *ArtLoader, ref string, width, height int) tea.Cmd {
	if loader == nil || ref == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), artFetchTimeout)
		defer cancel()

		art, err := loader.Render(ctx, ref, width, height)
		if err != nil {
			slog.Debug("illustration unavailable", "ref", ref, "error", err)
		}
		return model.ArtLoadedMsg{Ref: ref, Art: art, Err: err}
	}
}
