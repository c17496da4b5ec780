package handler

import (
	"Skylark/internal/api/dto"
	"Skylark/internal/pkg/consts"
	"Skylark/internal/pkg/response"
	"Skylark/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TrendHandler struct {
	trendSvc service.TrendService
}

func NewTrendHandler(trendSvc service.TrendService) *TrendHandler {
	return &TrendHandler{trendSvc: trendSvc}
}

func (s *TrendHandler) GetTrends(c *gin.Context) {
	woeid := consts.WorldwideWOEID
	if raw := c.Query("woeid"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		woeid = parsed
	}

	doc, err := s.trendSvc.GetTrends(c.Request.Context(), woeid)
	if err != nil {
		response.Error(c, err)
		return
	}
	if doc == nil {
		response.Success(c, dto.TrendListDTO{WOEID: woeid, Trends: []dto.TrendEntryDTO{}})
		return
	}

	entries := make([]dto.TrendEntryDTO, 0, len(doc.Trends))
	for _, t := range doc.Trends {
		entries = append(entries, dto.TrendEntryDTO{
			Name:   t.Name,
			Volume: t.Volume,
			Score:  t.Score,
			Query:  t.Query,
		})
	}
	asOf := doc.AsOf
	response.Success(c, dto.TrendListDTO{
		WOEID:    doc.WOEID,
		Location: doc.Location,
		AsOf:     &asOf,
		Trends:   entries,
	})
}
