package handler

import (
	"net/http"
	"time"

	"bookshelf/internal/delivery/api/response"
	"bookshelf/internal/domain/entity"
	"bookshelf/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type createBookRequest struct {
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author" validate:"required"`
	Description   string `json:"description"`
	ISBN          string `json:"isbn" validate:"max=20"`
	PublishedYear int    `json:"published_year" validate:"gte=0,lte=9999"`
}

type updateBookRequest struct {
	Title         *string `json:"title" validate:"omitempty,min=1"`
	Author        *string `json:"author" validate:"omitempty,min=1"`
	Description   *string `json:"description"`
	ISBN          *string `json:"isbn" validate:"omitempty,max=20"`
	PublishedYear *int    `json:"published_year" validate:"omitempty,gte=0,lte=9999"`
}

var bookMessages = map[string]string{
	"title.required":     "O título é obrigatório",
	"title.min":          "O título é obrigatório",
	"author.required":    "O autor é obrigatório",
	"author.min":         "O autor é obrigatório",
	"isbn.max":           "O ISBN pode ter no máximo 20 caracteres",
	"published_year.gte": "O ano de publicação precisa ser válido",
	"published_year.lte": "O ano de publicação precisa ser válido",
}

func (createBookRequest) ValidationMessages() map[string]string { return bookMessages }

func (updateBookRequest) ValidationMessages() map[string]string { return bookMessages }

type bookResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	ISBN          string    `json:"isbn"`
	PublishedYear int       `json:"published_year"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toBookResponse(book *entity.Book) bookResponse {
	return bookResponse{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		Description:   book.Description,
		ISBN:          book.ISBN,
		PublishedYear: book.PublishedYear,
		CreatedAt:     book.CreatedAt,
		UpdatedAt:     book.UpdatedAt,
	}
}

// BookHandler serves the book catalogue. Every route sits behind Authenticate.
type BookHandler struct {
	uc usecase.BookUsecase
}

// NewBookHandler is the constructor for BookHandler, injected by Fx.
func NewBookHandler(uc usecase.BookUsecase) *BookHandler {
	return &BookHandler{uc: uc}
}

func (h *BookHandler) Create(c echo.Context) error {
	var req createBookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	book, err := h.uc.Create(c.Request().Context(), &usecase.CreateBookInput{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		ISBN:          req.ISBN,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toBookResponse(book))
}

func (h *BookHandler) FindAll(c echo.Context) error {
	books, err := h.uc.FindAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]bookResponse, 0, len(books))
	for _, book := range books {
		out = append(out, toBookResponse(book))
	}

	return response.Success(c, http.StatusOK, out)
}

func (h *BookHandler) FindOne(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	book, err := h.uc.FindOne(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toBookResponse(book))
}

// Update applies only the fields present in the body.
func (h *BookHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateBookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	book, err := h.uc.Update(c.Request().Context(), id, &usecase.UpdateBookInput{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		ISBN:          req.ISBN,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toBookResponse(book))
}

func (h *BookHandler) Remove(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	out, err := h.uc.Remove(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toMessageResponse(out))
}
