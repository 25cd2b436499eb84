package render

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/techstore-lab/techstore/internal/models"
)

// Placeholder markers inside the static template documents.
const (
	MarkerProducts     = "<!-- SERVER_PRODUCTS -->"
	MarkerSearchStatus = "<!-- SERVER_SEARCH_STATUS -->"
	MarkerRenderedFlag = "<!-- SERVER_RENDERED_FLAG -->"
)

const renderedFlag = `<script>window.SERVER_RENDERED=true;</script>`

// Renderer substitutes computed fragments into the static pages. In lab
// mode user-controlled fields go into the document verbatim, which is
// the XSS exercise; hardened mode escapes them. The choice is explicit
// per field via the field method, never implicit in the template.
type Renderer struct {
	Dir    string
	Escape bool
}

func (r *Renderer) field(s string) string {
	if r.Escape {
		return html.EscapeString(s)
	}
	return s
}

func price(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// Page loads a template document and applies the substitutions, always
// stamping the server-rendered flag.
func (r *Renderer) Page(name string, subs map[string]string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(r.Dir, name))
	if err != nil {
		return "", fmt.Errorf("render: read template %s: %w", name, err)
	}

	doc := string(raw)
	for marker, fragment := range subs {
		doc = strings.Replace(doc, marker, fragment, 1)
	}
	return strings.Replace(doc, MarkerRenderedFlag, renderedFlag, 1), nil
}

func (r *Renderer) ProductCards(products []models.Product) string {
	var b strings.Builder
	for _, p := range products {
		fmt.Fprintf(&b, `
            <article class="product">
                <button class="delete-btn" onclick="deleteProduct(%d)">&times;</button>
                <h3>%s</h3>
                <p>%s</p>
                <p><strong>Price: $%s</strong></p>
                <button>Add to Cart</button>
            </article>
`, p.ID, r.field(p.Name), r.field(p.Description), price(p.Price))
	}
	return b.String()
}

func (r *Renderer) PendingCards(pending []models.PendingProduct) string {
	var b strings.Builder
	for _, p := range pending {
		fmt.Fprintf(&b, `
            <article class="product">
                <button class="delete-btn" onclick="rejectPending(%d)">&times;</button>
                <h3>%s</h3>
                <p>%s</p>
                <p><strong>Price: $%s</strong></p>
                <div class="review-actions">
                    <button class="approve-btn" onclick="approvePending(%d)">Approve</button>
                    <button class="reject-btn" onclick="rejectPending(%d)">Reject</button>
                </div>
            </article>
`, p.ID, r.field(p.Name), r.field(p.Description), price(p.Price), p.ID, p.ID)
	}
	return b.String()
}

// SearchStatus renders the "You are searching for" banner; the raw term
// flows through field, so in lab mode markup in the query executes on
// parse.
func (r *Renderer) SearchStatus(term string) string {
	if term == "" {
		return ""
	}
	return "You are searching for: " + r.field(term)
}

func (r *Renderer) QueueBanner() string {
	return `<div class="queue-banner">Admin Review Queue: Approve or Reject pending submissions.</div>`
}
