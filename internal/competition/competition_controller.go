package competition

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jfarias-dev/ligauni/pkg/responses"
)

// CompetitionController serves the public competition and standings pages.
type CompetitionController struct {
	repo CompetitionRepository
}

func NewCompetitionController(repo CompetitionRepository) *CompetitionController {
	return &CompetitionController{repo: repo}
}

// GetCompetitions godoc
// @Summary List competitions, newest first
// @Tags Competitions
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Competition}
// @Router /competitions [get]
func (cc *CompetitionController) GetCompetitions(c *gin.Context) {
	competitions, err := cc.repo.GetAll()
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", competitions)
}

// GetStandings godoc
// @Summary League standings of a competition, sorted by points
// @Tags Competitions
// @Produce json
// @Param competition_id path int true "Competition ID"
// @Success 200 {object} responses.SuccessResponse{data=[]TeamCompetition}
// @Failure 404 {object} responses.ErrorResponse
// @Router /competitions/{competition_id}/standings [get]
func (cc *CompetitionController) GetStandings(c *gin.Context) {
	competitionID, err := strconv.ParseUint(c.Param("competition_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Identificador de competencia inválido")
		return
	}

	competition, err := cc.repo.GetByID(uint(competitionID))
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if competition == nil {
		responses.NotFound(c, "La competencia")
		return
	}

	rows, err := cc.repo.GetStandings(competition.ID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", SortStandings(rows))
}
