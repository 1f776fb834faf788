package routes

import (
	"errors"
	"io"
	"net/http"

	"github.com/NguyenHongSon4/app-02/database"
	"github.com/NguyenHongSon4/app-02/middleware"
	"github.com/NguyenHongSon4/app-02/models"
	"github.com/NguyenHongSon4/app-02/services"
	"github.com/gin-gonic/gin"
)

func RegisterNoteRoutes(group *gin.RouterGroup, db *database.Database, noteService services.NoteServiceInterface) {
	group.GET("/notes", func(c *gin.Context) { GetNotes(c, db, noteService) })
	group.POST("/notes", func(c *gin.Context) { CreateNote(c, db, noteService) })

	group.GET("/notes/:id", func(c *gin.Context) { GetNoteById(c, db, noteService) })
	group.PUT("/notes/:id", func(c *gin.Context) { UpdateNote(c, db, noteService) })
	group.DELETE("/notes/:id", func(c *gin.Context) { DeleteNote(c, db, noteService) })
}

// bindNotePatch reads the request body. An empty body is an empty patch.
func bindNotePatch(c *gin.Context) (models.NotePatch, bool) {
	var patch models.NotePatch
	if err := c.ShouldBindJSON(&patch); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return patch, false
	}
	return patch, true
}

func GetNotes(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	notes, err := noteService.GetNotes(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notes)
}

func GetNoteById(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	note, err := noteService.GetNoteById(db, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, note)
}

func CreateNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	patch, ok := bindNotePatch(c)
	if !ok {
		return
	}

	note, err := noteService.CreateNote(db, patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	middleware.TrackNoteOperation("create")
	c.JSON(http.StatusCreated, note)
}

func UpdateNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	patch, ok := bindNotePatch(c)
	if !ok {
		return
	}

	note, err := noteService.UpdateNote(db, c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	middleware.TrackNoteOperation("update")
	c.JSON(http.StatusOK, note)
}

func DeleteNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	if err := noteService.DeleteNote(db, c.Param("id")); err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	middleware.TrackNoteOperation("delete")
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}
