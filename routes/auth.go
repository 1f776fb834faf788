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

type loginResponse struct {
	Message string         `json:"message"`
	Account models.Account `json:"account"`
	Token   string         `json:"token"`
}

func RegisterAuthRoutes(group *gin.RouterGroup, db *database.Database, accountService services.AccountServiceInterface, authService services.AuthServiceInterface) {
	group.POST("/login", func(c *gin.Context) { Login(c, db, accountService, authService) })
	group.POST("/register", func(c *gin.Context) { Register(c, db, accountService) })
	group.GET("/me", middleware.AuthMiddleware(authService), func(c *gin.Context) { GetCurrentAccount(c, db, accountService) })
}

// bindCredentials reads the request body. An empty body carries empty
// credentials.
func bindCredentials(c *gin.Context) (models.Credentials, bool) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return creds, false
	}
	return creds, true
}

func Login(c *gin.Context, db *database.Database, accountService services.AccountServiceInterface, authService services.AuthServiceInterface) {
	creds, ok := bindCredentials(c)
	if !ok {
		return
	}

	account, err := accountService.Login(db, creds)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			middleware.TrackAuthAttempt("failure", "login")
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	token, err := authService.GenerateToken(account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	middleware.TrackAuthAttempt("success", "login")
	c.JSON(http.StatusOK, loginResponse{
		Message: "Login successful",
		Account: account,
		Token:   token,
	})
}

func Register(c *gin.Context, db *database.Database, accountService services.AccountServiceInterface) {
	creds, ok := bindCredentials(c)
	if !ok {
		return
	}

	account, err := accountService.Register(db, creds)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			middleware.TrackAuthAttempt("failure", "register")
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	middleware.TrackAuthAttempt("success", "register")
	c.JSON(http.StatusCreated, account)
}

func GetCurrentAccount(c *gin.Context, db *database.Database, accountService services.AccountServiceInterface) {
	account, err := accountService.GetAccountById(db, c.GetInt("accountID"))
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Account no longer exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, account)
}
