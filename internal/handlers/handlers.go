package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"activity-hub/internal/api"
	"activity-hub/internal/auth"
	"activity-hub/internal/engine"
	"activity-hub/internal/middleware"
	"activity-hub/internal/utils"
	"activity-hub/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Server holds all server dependencies, including the actor system and engine
type Server struct {
	Context        *actor.RootContext
	Engine         *engine.Engine
	Metrics        *utils.MetricsCollector
	Hub            *websocket.Hub
	Tokens         auth.TokenCodec
	Logger         *zap.SugaredLogger
	RequestTimeout time.Duration

	// SimulatedLatency delays every /api response.
	SimulatedLatency time.Duration
}

// NewServer creates a new Server instance with the given components
func NewServer(
	context *actor.RootContext,
	engine *engine.Engine,
	metrics *utils.MetricsCollector,
	hub *websocket.Hub,
	tokens auth.TokenCodec,
	logger *zap.SugaredLogger,
	requestTimeout time.Duration,
) *Server {
	if requestTimeout <= 0 {
		requestTimeout = 5 * time.Second // Default timeout for actor requests
	}
	return &Server{
		Context:        context,
		Engine:         engine,
		Metrics:        metrics,
		Hub:            hub,
		Tokens:         tokens,
		Logger:         logger,
		RequestTimeout: requestTimeout,
	}
}

// ask sends msg to the store actor and waits for the reply. An *AppError
// reply is returned as the error.
func (s *Server) ask(msg interface{}) (interface{}, *utils.AppError) {
	result, err := s.Context.RequestFuture(s.Engine.GetStoreActor(), msg, s.RequestTimeout).Result()
	if err != nil {
		return nil, utils.NewActorTimeoutError("store", err)
	}
	if appErr, ok := result.(*utils.AppError); ok {
		return nil, appErr
	}
	return result, nil
}

// respond asks the store actor and writes the reply as JSON.
func (s *Server) respond(w http.ResponseWriter, msg interface{}) {
	result, appErr := s.ask(msg)
	if appErr != nil {
		s.writeAppError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// respondEmpty asks the store actor and writes {} on success.
func (s *Server) respondEmpty(w http.ResponseWriter, msg interface{}) {
	if _, appErr := s.ask(msg); appErr != nil {
		s.writeAppError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) writeAppError(w http.ResponseWriter, appErr *utils.AppError) {
	status := utils.AppErrorToHTTPStatus(appErr.Code)
	if status >= http.StatusInternalServerError {
		s.Logger.Errorf("Request failed: %v", appErr)
	}
	WriteResponse(w, appErr.Message, status)
}

// WriteResponse writes {"message": msg} with the given status.
func WriteResponse(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, &api.ErrorResponse{Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return utils.NewInvalidInputError("Invalid request body")
	}
	return nil
}

func writeErr(w http.ResponseWriter, err error) {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		WriteResponse(w, appErr.Message, utils.AppErrorToHTTPStatus(appErr.Code))
		return
	}
	WriteResponse(w, err.Error(), http.StatusBadRequest)
}

// ParseIDParam reads a numeric path variable.
func ParseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, utils.NewInvalidInputError("Invalid " + name)
	}
	return id, nil
}

func callerID(r *http.Request) int64 {
	return middleware.UserIDFromContext(r.Context())
}
