package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type TranslateRequest struct {
	Text       string `json:"text" binding:"required"`
	TargetLang string `json:"targetLang"`
}

// Translate translates free text, detecting the source language.
func Translate(c *gin.Context, translator Translator, log logrus.FieldLogger) {
	var request TranslateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if translator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "translation is not configured"})
		return
	}

	target := strings.TrimSpace(request.TargetLang)
	if target == "" {
		target = "en"
	}

	translated, err := translator.Translate(c.Request.Context(), request.Text, "auto", target)
	if err != nil {
		log.WithError(err).WithField("request_id", RequestID(c)).Warn("translation failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "translation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"translated_text": translated})
}
