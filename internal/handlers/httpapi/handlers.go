package httpapi

import (
	"net/http"
	"time"

	"github.com/settleco/accord/internal/models"
	"github.com/settleco/accord/internal/services/casefile"
)

type loginRequest struct {
	UserID  string       `json:"user_id"`
	Profile *userPayload `json:"profile,omitempty"`
}

type userPayload struct {
	Name            string `json:"name"`
	IdentityNo      string `json:"identity_no"`
	CarPlate        string `json:"car_plate"`
	CarModel        string `json:"car_model"`
	InsurancePolicy string `json:"insurance_policy"`
	IsPolice        bool   `json:"is_police"`
	Address         string `json:"address,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Occupation      string `json:"occupation,omitempty"`
	LicenceNo       string `json:"licence_no,omitempty"`
}

func userPayloadFromModel(u *models.User) *userPayload {
	if u == nil {
		return nil
	}
	return &userPayload{
		Name:            u.Name,
		IdentityNo:      u.IdentityNo,
		CarPlate:        u.CarPlate,
		CarModel:        u.CarModel,
		InsurancePolicy: u.InsurancePolicy,
		IsPolice:        u.IsPolice,
		Address:         u.Address,
		Phone:           u.Phone,
		Occupation:      u.Occupation,
		LicenceNo:       u.LicenceNo,
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.readJSON(w, r, &req) {
		return
	}

	var profile *models.User
	if req.Profile != nil {
		profile = &models.User{
			Name:            req.Profile.Name,
			IdentityNo:      req.Profile.IdentityNo,
			CarPlate:        req.Profile.CarPlate,
			CarModel:        req.Profile.CarModel,
			InsurancePolicy: req.Profile.InsurancePolicy,
			IsPolice:        req.Profile.IsPolice,
			Address:         req.Profile.Address,
			Phone:           req.Profile.Phone,
			Occupation:      req.Profile.Occupation,
			LicenceNo:       req.Profile.LicenceNo,
		}
	}

	output, err := s.service.Login(r.Context(), &casefile.LoginInput{
		UserID:  req.UserID,
		Profile: profile,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		UserID  string       `json:"user_id"`
		Profile *userPayload `json:"profile"`
	}{
		UserID:  output.User.ID,
		Profile: userPayloadFromModel(output.User),
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if !s.readJSON(w, r, &req) {
		return
	}

	output, err := s.service.CreateSession(r.Context(), &casefile.CreateSessionInput{
		DriverAID: req.UserID,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, struct {
		SessionID string `json:"session_id"`
		OTP       string `json:"otp"`
	}{
		SessionID: output.SessionID,
		OTP:       output.OTP,
	})
}

func (s *Server) handleJoinSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OTP    string `json:"otp"`
		UserID string `json:"user_id"`
	}
	if !s.readJSON(w, r, &req) {
		return
	}

	output, err := s.service.JoinSession(r.Context(), &casefile.JoinSessionInput{
		OTP:      req.OTP,
		DriverID: req.UserID,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		SessionID string `json:"session_id"`
		Status    string `json:"status"`
	}{
		SessionID: output.SessionID,
		Status:    "JOINED",
	})
}

func (s *Server) handleReconnect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OTP    string `json:"otp"`
		UserID string `json:"user_id"`
	}
	if !s.readJSON(w, r, &req) {
		return
	}

	output, err := s.service.Reconnect(r.Context(), &casefile.ReconnectInput{
		OTP:    req.OTP,
		UserID: req.UserID,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		SessionID         string               `json:"session_id"`
		Status            models.SessionStatus `json:"status"`
		Role              casefile.Role        `json:"role"`
		PartnerID         string               `json:"partner_id,omitempty"`
		PartnerProfile    *userPayload         `json:"partner_profile,omitempty"`
		HasSubmittedDraft bool                 `json:"has_submitted_draft"`
		MeetingRef        string               `json:"meeting_ref,omitempty"`
	}{
		SessionID:         output.SessionID,
		Status:            output.Status,
		Role:              output.Role,
		PartnerID:         output.PartnerID,
		PartnerProfile:    userPayloadFromModel(output.PartnerProfile),
		HasSubmittedDraft: output.HasSubmittedDraft,
		MeetingRef:        output.MeetingRef,
	})
}

type submitDraftRequest struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Draft     struct {
		AccidentTime   *time.Time `json:"accident_time,omitempty"`
		Location       string     `json:"location"`
		IncidentType   string     `json:"incident_type"`
		Description    string     `json:"description"`
		Weather        string     `json:"weather,omitempty"`
		RoadSurface    string     `json:"road_surface,omitempty"`
		RoadType       string     `json:"road_type,omitempty"`
		FaultAssertion string     `json:"fault_assertion,omitempty"`
	} `json:"draft"`
	Evidences []struct {
		Type    models.EvidenceType `json:"type"`
		Tag     models.EvidenceTag  `json:"tag"`
		Title   string              `json:"title,omitempty"`
		Content string              `json:"content"`
	} `json:"evidences"`
}

func (s *Server) handleSubmitDraft(w http.ResponseWriter, r *http.Request) {
	var req submitDraftRequest
	if !s.readJSON(w, r, &req) {
		return
	}

	evidence := make([]casefile.EvidenceItem, 0, len(req.Evidences))
	for _, item := range req.Evidences {
		evidence = append(evidence, casefile.EvidenceItem{
			Type:    item.Type,
			Tag:     item.Tag,
			Title:   item.Title,
			Content: item.Content,
		})
	}

	output, err := s.service.SubmitDraft(r.Context(), &casefile.SubmitDraftInput{
		SessionID: req.SessionID,
		DriverID:  req.UserID,
		Draft: &casefile.DraftPayload{
			AccidentTime:   req.Draft.AccidentTime,
			Location:       req.Draft.Location,
			IncidentType:   req.Draft.IncidentType,
			Description:    req.Draft.Description,
			Weather:        req.Draft.Weather,
			RoadSurface:    req.Draft.RoadSurface,
			RoadType:       req.Draft.RoadType,
			FaultAssertion: req.Draft.FaultAssertion,
		},
		Evidence: evidence,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		Status   casefile.SubmitStatus `json:"status"`
		DraftID  string                `json:"draft_id"`
		ReportID string                `json:"report_id,omitempty"`
	}{
		Status:   output.Status,
		DraftID:  output.DraftID,
		ReportID: output.ReportID,
	})
}

func (s *Server) handleStartMeeting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
		PoliceID  string `json:"police_id"`
	}
	if !s.readJSON(w, r, &req) {
		return
	}

	output, err := s.service.StartMeeting(r.Context(), &casefile.StartMeetingInput{
		SessionID: req.SessionID,
		PoliceID:  req.PoliceID,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		MeetingRef string `json:"meeting_ref"`
	}{
		MeetingRef: output.MeetingRef,
	})
}

func (s *Server) handleSignDriver(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
		UserID    string `json:"user_id"`
		Signature string `json:"signature"`
	}
	if !s.readJSON(w, r, &req) {
		return
	}

	output, err := s.service.SignDriver(r.Context(), &casefile.SignDriverInput{
		SessionID: req.SessionID,
		DriverID:  req.UserID,
		Signature: req.Signature,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, signResponse(output))
}

func (s *Server) handleSignPolice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
		PoliceID  string `json:"police_id"`
		Signature string `json:"signature"`
	}
	if !s.readJSON(w, r, &req) {
		return
	}

	output, err := s.service.SignPolice(r.Context(), &casefile.SignPoliceInput{
		SessionID: req.SessionID,
		PoliceID:  req.PoliceID,
		Signature: req.Signature,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, signResponse(output))
}

func signResponse(output *casefile.SignOutput) any {
	status := "SIGNED"
	if output.Completed {
		status = "CASE_CLOSED"
	}
	return struct {
		Status string `json:"status"`
	}{Status: status}
}

func (s *Server) handleUpdateCaseDetails(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID      string `json:"session_id"`
		PoliceID       string `json:"police_id"`
		Station        string `json:"station,omitempty"`
		District       string `json:"district,omitempty"`
		Contingent     string `json:"contingent,omitempty"`
		OffenceSection string `json:"offence_section,omitempty"`
		Decision       string `json:"decision,omitempty"`
		DecisionNotes  string `json:"decision_notes,omitempty"`
		OfficerName    string `json:"officer_name,omitempty"`
		OfficerRank    string `json:"officer_rank,omitempty"`
	}
	if !s.readJSON(w, r, &req) {
		return
	}

	output, err := s.service.UpdateCaseDetails(r.Context(), &casefile.UpdateCaseDetailsInput{
		SessionID:      req.SessionID,
		PoliceID:       req.PoliceID,
		Station:        req.Station,
		District:       req.District,
		Contingent:     req.Contingent,
		OffenceSection: req.OffenceSection,
		Decision:       req.Decision,
		DecisionNotes:  req.DecisionNotes,
		OfficerName:    req.OfficerName,
		OfficerRank:    req.OfficerRank,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, output.CaseDetails)
}

func (s *Server) handleGetCaseFile(w http.ResponseWriter, r *http.Request) {
	output, err := s.service.GetCaseFile(r.Context(), &casefile.GetCaseFileInput{
		SessionID: r.PathValue("sessionID"),
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, output)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var statuses []models.SessionStatus
	for _, value := range r.URL.Query()["status"] {
		statuses = append(statuses, models.SessionStatus(value))
	}

	output, err := s.service.GetDashboard(r.Context(), &casefile.GetDashboardInput{
		Statuses: statuses,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	type sessionSummary struct {
		SessionID  string               `json:"session_id"`
		Status     models.SessionStatus `json:"status"`
		DriverAID  string               `json:"driver_a_id"`
		DriverBID  string               `json:"driver_b_id,omitempty"`
		PoliceID   string               `json:"police_id,omitempty"`
		ReportID   string               `json:"report_id,omitempty"`
		MeetingRef string               `json:"meeting_ref,omitempty"`
		CreatedAt  time.Time            `json:"created_at"`
	}

	summaries := make([]sessionSummary, 0, len(output.Sessions))
	for _, session := range output.Sessions {
		summaries = append(summaries, sessionSummary{
			SessionID:  session.ID,
			Status:     session.Status,
			DriverAID:  session.DriverAID,
			DriverBID:  session.DriverBID,
			PoliceID:   session.PoliceID,
			ReportID:   session.ReportID,
			MeetingRef: session.MeetingRef,
			CreatedAt:  session.CreatedAt,
		})
	}

	s.writeJSON(w, http.StatusOK, struct {
		Sessions []sessionSummary `json:"sessions"`
	}{Sessions: summaries})
}
