package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"bookstore/internal/logging"
	"bookstore/internal/models"
	"bookstore/internal/service/catalog"
	"bookstore/internal/service/search"
)

type AdminHTTP struct {
	Svc    *catalog.Service
	Search *search.Service
}

func (h *AdminHTTP) CreateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_book")

	var req CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	book := models.Book{
		ISBN:      req.ISBN,
		Title:     req.Title,
		Author:    req.Author,
		Year:      req.Year,
		Publisher: req.Publisher,
		ImageURL:  req.ImageURL,
	}
	if err := h.Svc.CreateBook(ctx, &book); err != nil {
		switch {
		case errors.Is(err, catalog.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, catalog.ErrConflict):
			return echo.NewHTTPError(http.StatusBadRequest, "book already exists")
		default:
			l.Error("create_book_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	if req.Price != nil || req.Quantity != nil {
		if err := h.Svc.UpdateInventory(ctx, book.ISBN, req.Price, req.Quantity); err != nil {
			l.Error("create_book_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	h.index(c, book)
	return c.JSON(http.StatusCreated, book)
}

func (h *AdminHTTP) UpdateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_book")

	var req UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	isbn := c.Param("isbn")
	if err := h.Svc.UpdateInventory(ctx, isbn, req.Price, req.Quantity); err != nil {
		switch {
		case errors.Is(err, catalog.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, catalog.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "book not found")
		default:
			l.Error("update_book_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "book updated successfully"})
}

func (h *AdminHTTP) DeleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_book")

	isbn := c.Param("isbn")
	if err := h.Svc.DeleteBook(ctx, isbn); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "book not found")
		}
		l.Error("delete_book_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if h.Search.Enabled() {
		if err := h.Search.DeleteBook(ctx, isbn); err != nil {
			l.Warn("search deindex failed", "isbn", isbn, "error", err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "book deleted successfully"})
}

func (h *AdminHTTP) index(c echo.Context, book models.Book) {
	if !h.Search.Enabled() {
		return
	}
	ctx := c.Request().Context()
	doc := search.BookDoc{
		ISBN:      book.ISBN,
		Title:     book.Title,
		Author:    book.Author,
		Publisher: book.Publisher,
	}
	if err := h.Search.IndexBook(ctx, doc); err != nil {
		logging.FromContext(ctx).Warn("search index failed", "isbn", book.ISBN, "error", err)
	}
}
