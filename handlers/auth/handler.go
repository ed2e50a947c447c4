package auth

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/isntboxs/docsofboxs-api/db"
	"github.com/isntboxs/docsofboxs-api/models"
	"github.com/isntboxs/docsofboxs-api/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// @Summary Register a new user
// @Description Create a new account with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.UserRegister true "User information"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response "error: Invalid input"
// @Failure 409 {object} utils.Response "error: Email already used"
// @Failure 500 {object} utils.Response "error: Error message"
// @Router /auth/register [post]
func Register(c *gin.Context) {
	var input models.UserRegister

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	hasLower := strings.ContainsAny(input.Password, "abcdefghijklmnopqrstuvwxyz")
	hasUpper := strings.ContainsAny(input.Password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	hasDigit := strings.ContainsAny(input.Password, "0123456789")

	if !hasLower || !hasUpper || !hasDigit {
		utils.SendError(c, http.StatusBadRequest, "The password must contain at least one lowercase, one uppercase and one digit")
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existingUser models.User
	if err := db.DB.Where("email = ?", email).First(&existingUser).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "This email is already used")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogError(err, "Error when checking the email existence")
		utils.SendError(c, http.StatusInternalServerError, "Error when checking the email existence")
		return
	}

	passwordHash, err := hashPassword(input.Password)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Error hashing the password")
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    email,
		Password: passwordHash,
		UserName: input.UserName,
		Role:     roleForEmail(email),
	}

	if err := db.DB.Create(&user).Error; err != nil {
		utils.LogError(err, "Error creating user")
		utils.SendError(c, http.StatusInternalServerError, "Error creating user")
		return
	}

	utils.LogSuccessWithUser(user.ID, "User registered successfully")
	utils.SendSuccess(c, http.StatusCreated, "User registered successfully", user)
}

// @Summary User login
// @Description Log in with email and password, returns a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.UserLogin true "Credentials"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response "error: Invalid input"
// @Failure 401 {object} utils.Response "error: Wrong credentials"
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var input models.UserLogin

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	result := db.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusUnauthorized, "Wrong credentials")
		} else {
			utils.LogError(result.Error, "Database error during login")
			utils.SendError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !samePassword(input.Password, user.Password) {
		utils.SendError(c, http.StatusUnauthorized, "Wrong credentials")
		return
	}

	token, err := utils.GenerateJWT(user, 72)
	if err != nil {
		utils.LogErrorWithUser(user.ID, err, "Error generating the token")
		utils.SendError(c, http.StatusInternalServerError, "Error generating the token")
		return
	}

	utils.LogSuccessWithUser(user.ID, "User logged in successfully")
	utils.SendSuccess(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// @Summary Current user
// @Description Return the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response "error: Unauthorized"
// @Failure 404 {object} utils.Response "error: User not found"
// @Router /auth/me [get]
func Me(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	utils.SendSuccess(c, http.StatusOK, "User fetched successfully", user)
}

// roleForEmail escalates the role to admin when the email is listed in the
// ADMIN_EMAILS environment variable (comma separated).
func roleForEmail(email string) models.Role {
	for _, admin := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		if admin != "" && strings.EqualFold(strings.TrimSpace(admin), email) {
			return models.AdminRole
		}
	}
	return models.UserRole
}

func hashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func samePassword(formPassword string, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(formPassword))
	return err == nil
}
