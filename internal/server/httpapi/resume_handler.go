package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekarpova/resumecraft/internal/logging"
	"github.com/ekarpova/resumecraft/internal/resume"
	"github.com/ekarpova/resumecraft/internal/server/resumes"
)

type ResumeHandler struct {
	logger        logging.Logger
	resumeService *resumes.Service
}

func NewResumeHandler(logger logging.Logger, resumeService *resumes.Service) *ResumeHandler {
	return &ResumeHandler{logger: logger, resumeService: resumeService}
}

func (h *ResumeHandler) List(c *gin.Context) {
	list, err := h.resumeService.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []resume.Summary{}
	}

	c.JSON(http.StatusOK, gin.H{"resumes": list})
}

func (h *ResumeHandler) Get(c *gin.Context) {
	agg, err := h.resumeService.Get(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, agg)
}

type createResumeRequest struct {
	Title    string          `json:"title" binding:"required"`
	Template resume.Template `json:"template"`
}

func (h *ResumeHandler) Create(c *gin.Context) {
	var req createResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	ctx := c.Request.Context()
	id, err := h.resumeService.Create(ctx, currentUserID(c), req.Title, req.Template)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info(ctx, "resume created", "resume_id", id)
	c.JSON(http.StatusCreated, gin.H{"message": "Resume created successfully", "resumeId": id})
}

type updateResumeRequest struct {
	Title    string          `json:"title" binding:"required"`
	Template resume.Template `json:"template"`
	IsPublic bool            `json:"isPublic"`
}

func (h *ResumeHandler) Update(c *gin.Context) {
	var req updateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	err := h.resumeService.Update(c.Request.Context(), c.Param("id"), currentUserID(c),
		req.Title, req.Template, req.IsPublic)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resume updated successfully"})
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if err := h.resumeService.Delete(ctx, id, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info(ctx, "resume deleted", "resume_id", id)
	c.JSON(http.StatusOK, gin.H{"message": "Resume deleted successfully"})
}

// bindSection decodes a section payload, normalizes it and runs the shared
// field validation. Responds on failure and reports whether to proceed.
func bindSection(c *gin.Context, payload resume.SectionPayload) bool {
	if err := c.ShouldBindJSON(payload); err != nil {
		respondBadBody(c)
		return false
	}
	payload.Normalize()
	if err := resume.Validate(payload); err != nil {
		respondError(c, err)
		return false
	}
	return true
}

func (h *ResumeHandler) SavePersonalInfo(c *gin.Context) {
	var p resume.PersonalInfo
	if !bindSection(c, &p) {
		return
	}

	err := h.resumeService.SavePersonalInfo(c.Request.Context(), c.Param("id"), currentUserID(c), &p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Personal information saved successfully"})
}

func (h *ResumeHandler) AddWorkExperience(c *gin.Context) {
	var w resume.WorkExperience
	if !bindSection(c, &w) {
		return
	}

	id, err := h.resumeService.AddWorkExperience(c.Request.Context(), c.Param("id"), currentUserID(c), &w)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Work experience added successfully", "id": id})
}

func (h *ResumeHandler) AddEducation(c *gin.Context) {
	var e resume.Education
	if !bindSection(c, &e) {
		return
	}

	id, err := h.resumeService.AddEducation(c.Request.Context(), c.Param("id"), currentUserID(c), &e)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Education added successfully", "id": id})
}

func (h *ResumeHandler) AddSkill(c *gin.Context) {
	var sk resume.Skill
	if !bindSection(c, &sk) {
		return
	}

	id, err := h.resumeService.AddSkill(c.Request.Context(), c.Param("id"), currentUserID(c), &sk)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Skill added successfully", "id": id})
}
