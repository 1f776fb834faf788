package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/NguyenHongSon4/app-02/database"
	"github.com/NguyenHongSon4/app-02/services"
	"github.com/gin-gonic/gin"
)

func RegisterAccountRoutes(group *gin.RouterGroup, db *database.Database, accountService services.AccountServiceInterface) {
	group.GET("/accounts", func(c *gin.Context) { GetAccounts(c, db, accountService) })
	group.GET("/accounts/:id", func(c *gin.Context) { GetAccountById(c, db, accountService) })
}

func GetAccounts(c *gin.Context, db *database.Database, accountService services.AccountServiceInterface) {
	accounts, err := accountService.GetAccounts(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// GetAccountById answers 404 for ids that are not integers as well as for
// unknown ones.
func GetAccountById(c *gin.Context, db *database.Database, accountService services.AccountServiceInterface) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Account not found"})
		return
	}

	account, err := accountService.GetAccountById(db, id)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, account)
}
