package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"

	"github.com/sem-titulo/controle-financeiro/pkg/response"
)

// contextoUsuarioID is the gin context key holding the authenticated owner.
const contextoUsuarioID = "usuario_id"

// tokenClaims mirrors the token layout issued by the auth service: the
// user identity travels inside a nested "info" object.
type tokenClaims struct {
	Info struct {
		ID    string `json:"id"`
		Nome  string `json:"nome"`
		Email string `json:"email"`
	} `json:"info"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the bearer token and stores the caller's id in
// the context. Every domain route sits behind it.
func AuthMiddleware(segredo string) gin.HandlerFunc {
	return func(c *gin.Context) {
		bruto := c.GetHeader("Authorization")
		if bruto == "" {
			response.Erro(c, 401, "credenciais não fornecidas")
			c.Abort()
			return
		}
		bruto = strings.TrimPrefix(bruto, "Bearer ")

		claims := &tokenClaims{}
		_, err := jwt.ParseWithClaims(bruto, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
			}
			return []byte(segredo), nil
		})
		if err != nil || claims.Info.ID == "" {
			response.Erro(c, 401, "token inválido ou expirado")
			c.Abort()
			return
		}

		c.Set(contextoUsuarioID, claims.Info.ID)
		c.Next()
	}
}

func usuarioDoContexto(c *gin.Context) string {
	return c.GetString(contextoUsuarioID)
}

// LoggerMiddleware logs one structured line per request.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		inicio := time.Now()
		caminho := c.Request.URL.Path

		c.Next()

		logrus.WithFields(logrus.Fields{
			"status":   c.Writer.Status(),
			"metodo":   c.Request.Method,
			"caminho":  caminho,
			"ip":       c.ClientIP(),
			"latencia": time.Since(inicio).String(),
		}).Info("requisição atendida")
	}
}

// RecoveryMiddleware keeps a panicking handler from taking the server down.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logrus.WithField("panic", err).Error("handler em pânico")
				c.AbortWithStatusJSON(500, gin.H{"error": "erro interno do servidor"})
			}
		}()
		c.Next()
	}
}

// CORSMiddleware allows the browser frontend to talk to the API.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
