package helper

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func ctxWithQuery(t *testing.T, app *fiber.App, query string) *fiber.Ctx {
	t.Helper()
	fctx := &fasthttp.RequestCtx{}
	fctx.Request.SetRequestURI("/?" + query)
	return app.AcquireCtx(fctx)
}

func TestResolvePaging(t *testing.T) {
	app := fiber.New()

	t.Run("defaults", func(t *testing.T) {
		c := ctxWithQuery(t, app, "")
		defer app.ReleaseCtx(c)
		p := ResolvePaging(c, 20, 100)
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 20, p.PerPage)
		assert.Equal(t, 0, p.Offset)
	})

	t.Run("explicit values", func(t *testing.T) {
		c := ctxWithQuery(t, app, "page=3&per_page=10")
		defer app.ReleaseCtx(c)
		p := ResolvePaging(c, 20, 100)
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 10, p.PerPage)
		assert.Equal(t, 20, p.Offset)
	})

	t.Run("limit alias", func(t *testing.T) {
		c := ctxWithQuery(t, app, "limit=5")
		defer app.ReleaseCtx(c)
		p := ResolvePaging(c, 20, 100)
		assert.Equal(t, 5, p.PerPage)
	})

	t.Run("caps and floors", func(t *testing.T) {
		c := ctxWithQuery(t, app, "page=-2&per_page=9999")
		defer app.ReleaseCtx(c)
		p := ResolvePaging(c, 20, 100)
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 100, p.PerPage)
	})

	t.Run("garbage falls back", func(t *testing.T) {
		c := ctxWithQuery(t, app, "page=abc&per_page=xyz")
		defer app.ReleaseCtx(c)
		p := ResolvePaging(c, 20, 100)
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 20, p.PerPage)
	})
}

func TestBuildPaginationFromPage(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		p := BuildPaginationFromPage(45, 2, 20)
		assert.EqualValues(t, 45, p.Total)
		assert.Equal(t, 3, p.TotalPages)
		assert.True(t, p.HasNext)
		assert.True(t, p.HasPrev)
	})

	t.Run("empty set still reports one page", func(t *testing.T) {
		p := BuildPaginationFromPage(0, 1, 20)
		assert.Equal(t, 1, p.TotalPages)
		assert.False(t, p.HasNext)
		assert.False(t, p.HasPrev)
	})

	t.Run("page overrun keeps true total", func(t *testing.T) {
		p := BuildPaginationFromPage(10, 99, 20)
		require.EqualValues(t, 10, p.Total)
		assert.Equal(t, 1, p.TotalPages)
		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrev)
	})
}
