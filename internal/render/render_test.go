package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/techstore-lab/techstore/internal/models"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestPageSubstitution(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "index.html",
		"<body><!-- SERVER_PRODUCTS --><!-- SERVER_RENDERED_FLAG --></body>")

	r := &Renderer{Dir: dir}
	doc, err := r.Page("index.html", map[string]string{
		MarkerProducts: "<article>card</article>",
	})
	require.NoError(t, err)
	require.Contains(t, doc, "<article>card</article>")
	require.Contains(t, doc, "window.SERVER_RENDERED=true")
	require.NotContains(t, doc, MarkerProducts)

	_, err = r.Page("missing.html", nil)
	require.Error(t, err)
}

func TestProductCardsLabModeKeepsMarkup(t *testing.T) {
	r := &Renderer{Escape: false}
	cards := r.ProductCards([]models.Product{
		{ID: 7, Name: "<img src=x onerror=alert(1)>", Description: "plain", Price: 9.99},
	})

	require.Contains(t, cards, "<img src=x onerror=alert(1)>")
	require.Contains(t, cards, "deleteProduct(7)")
	require.Contains(t, cards, "Price: $9.99")
}

func TestProductCardsHardenedModeEscapes(t *testing.T) {
	r := &Renderer{Escape: true}
	cards := r.ProductCards([]models.Product{
		{ID: 7, Name: "<script>alert(1)</script>", Description: "a & b", Price: 199.99},
	})

	require.NotContains(t, cards, "<script>alert(1)</script>")
	require.Contains(t, cards, "&lt;script&gt;alert(1)&lt;/script&gt;")
	require.Contains(t, cards, "a &amp; b")
}

func TestSearchStatus(t *testing.T) {
	lab := &Renderer{Escape: false}
	require.Empty(t, lab.SearchStatus(""))
	require.Equal(t, "You are searching for: <b onload=x>", lab.SearchStatus("<b onload=x>"))

	hardened := &Renderer{Escape: true}
	require.Equal(t, "You are searching for: &lt;b onload=x&gt;", hardened.SearchStatus("<b onload=x>"))
}

func TestPendingCards(t *testing.T) {
	r := &Renderer{}
	cards := r.PendingCards([]models.PendingProduct{
		{ID: 3, Name: "X", Description: "Y", Price: 9.99},
	})
	require.Contains(t, cards, "approvePending(3)")
	require.Contains(t, cards, "rejectPending(3)")
}
