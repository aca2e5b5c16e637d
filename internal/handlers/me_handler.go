package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	ucBarber "github.com/BruksfildServices01/barbershop-booking/internal/usecase/barber"
)

const maxPhotoBytes = 5 << 20

type MeHandler struct {
	barbers *ucBarber.Service
}

func NewMeHandler(barbers *ucBarber.Service) *MeHandler {
	return &MeHandler{barbers: barbers}
}

type UpdateMeRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Login *string `json:"login" binding:"omitempty,max=100"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	barber, err := h.barbers.Get(c.Request.Context(), middleware.BarberID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"barber": barber})
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if !bindJSON(c, &req) {
		return
	}

	barber, err := h.barbers.Update(c.Request.Context(), middleware.BarberID(c), ucBarber.UpdateInput{
		Name:  req.Name,
		Login: req.Login,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"barber": barber})
}

// UploadPhoto accepts a multipart "photo" field or a raw image body.
func (h *MeHandler) UploadPhoto(c *gin.Context) {
	data, ok := readPhoto(c)
	if !ok {
		return
	}

	barber, err := h.barbers.UploadPhoto(c.Request.Context(), middleware.BarberID(c), data)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"barber": barber})
}

func readPhoto(c *gin.Context) ([]byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoBytes)

	if fh, err := c.FormFile("photo"); err == nil {
		f, err := fh.Open()
		if err != nil {
			httperr.BadRequest(c, "invalid_image", "Não foi possível ler a imagem.")
			return nil, false
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			httperr.BadRequest(c, "invalid_image", "Não foi possível ler a imagem.")
			return nil, false
		}
		return data, true
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil || len(data) == 0 {
		httperr.BadRequest(c, "invalid_image", "Envie uma imagem de até 5MB.")
		return nil, false
	}
	return data, true
}
