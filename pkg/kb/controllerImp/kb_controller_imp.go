package controllerImp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"

	"agriplan/pkg/apperr"
	"agriplan/pkg/kb/controller"
	"agriplan/pkg/kb/service"
)

type KBCtrl struct {
	s        service.NoteService
	allow    map[string]bool
	maxBytes int
	httpc    *http.Client
}

type ingestReq struct {
	Title     string `json:"title"`
	Crop      string `json:"crop"`
	Tags      string `json:"tags"`
	Text      string `json:"text"`
	SourceURL string `json:"source_url"`
}

// New builds the controller. URL ingestion only fetches from hosts in
// allowedDomains; pages larger than maxBytes are refused.
func New(s service.NoteService, allowedDomains []string, maxBytes int) controller.KBController {
	allow := map[string]bool{}
	for _, h := range allowedDomains {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			allow[h] = true
		}
	}
	if maxBytes <= 0 {
		maxBytes = 1500000
	}
	h := &KBCtrl{s: s, allow: allow, maxBytes: maxBytes}
	h.httpc = &http.Client{
		Timeout: 20 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return errors.New("too many redirects")
			}
			if !h.allowed(req.URL) {
				return fmt.Errorf("redirect to %s: domain not allowed", req.URL.Hostname())
			}
			return nil
		},
	}
	return h
}

// allowed matches the host without its port.
func (h *KBCtrl) allowed(u *url.URL) bool {
	return h.allow[strings.ToLower(u.Hostname())]
}

func (h *KBCtrl) IngestText(c echo.Context) error {
	var req ingestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json: " + err.Error()})
	}
	doc, n, err := h.s.Ingest(c.Request().Context(), req.Title, req.Crop, req.Tags, req.Text, req.SourceURL)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"doc": doc, "chunks": n})
}

func (h *KBCtrl) IngestURL(c echo.Context) error {
	var body struct {
		URL   string `json:"url"`
		Crop  string `json:"crop"`
		Tags  string `json:"tags"`
		Title string `json:"title"`
	}
	if err := c.Bind(&body); err != nil || body.URL == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "url required"})
	}
	u, err := url.Parse(body.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad url"})
	}
	if !h.allowed(u) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "domain not allowed"})
	}

	txt, title, err := fetchMainText(c.Request().Context(), h.httpc, body.URL, h.maxBytes)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	if body.Title != "" {
		title = body.Title
	}
	doc, n, err := h.s.Ingest(c.Request().Context(), title, body.Crop, body.Tags, txt, body.URL)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"doc": doc, "chunks": n})
}

func (h *KBCtrl) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "q required"})
	}
	hits, err := h.s.Search(c.Request().Context(), q, c.QueryParam("crop"), 6)
	if err != nil {
		return apperr.JSON(c, err)
	}
	if hits == nil {
		hits = []service.Hit{}
	}
	return c.JSON(http.StatusOK, hits)
}

// fetchMainText downloads a page and keeps the readable text of its main
// content: headings, paragraphs and list items.
func fetchMainText(ctx context.Context, httpc *http.Client, u string, maxBytes int) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", "", err
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("fetch: status %d", resp.StatusCode)
	}
	if resp.ContentLength > int64(maxBytes) {
		return "", "", fmt.Errorf("page too large")
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxBytes)))
	if err != nil {
		return "", "", err
	}
	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	switch {
	case strings.Contains(ct, "text/plain"):
		return string(b), guessTitleFromText(string(b)), nil
	case !strings.Contains(ct, "text/html"):
		return "", "", fmt.Errorf("unsupported content-type: %s", ct)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return "", "", err
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())

	var parts []string
	sel := doc.Find("main, article")
	if sel.Length() == 0 {
		sel = doc.Selection
	}
	sel.Find("h1,h2,h3,p,li").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return cleanWhitespace(strings.Join(parts, "\n")), title, nil
}

var wsRX = regexp.MustCompile(`\s+\n`)

func cleanWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return wsRX.ReplaceAllString(s, "\n")
}

func guessTitleFromText(s string) string {
	line := strings.SplitN(strings.TrimSpace(s), "\n", 2)[0]
	if r := []rune(line); len(r) > 120 {
		line = string(r[:120])
	}
	return line
}

func (h *KBCtrl) Docs(c echo.Context) error {
	docs, err := h.s.Docs(c.Request().Context())
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, docs)
}
