package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"go-posture-inspector/internal/config"
	apperrors "go-posture-inspector/internal/errors"
	"go-posture-inspector/internal/logger"
	"go-posture-inspector/internal/service"
	"go-posture-inspector/pkg/models"
)

const (
	pingInterval = 30 * time.Second
	readTimeout  = 2 * pingInterval
	writeTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// streamControl is a non-frame message on the stream
type streamControl struct {
	Type string `json:"type"`
}

// streamFrames analyzes frames sent over a WebSocket. Each connection owns a
// fresh engine; every text message is a FrameRequest and gets one reply.
func streamFrames(svc service.PostureAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var opts models.CreateSessionRequest
		if err := c.ShouldBindQuery(&opts); err != nil {
			respondError(c, http.StatusBadRequest, "invalid stream options", err)
			return
		}

		requestID := c.GetString(requestIDKey)
		ctx := context.WithValue(context.Background(), service.RequestIDKey, requestID)

		stream, err := svc.OpenStream(ctx, opts)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "failed to open stream", err)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already replied to the client
			logger.WithError(err).WithField("request_id", requestID).Warn("WebSocket upgrade failed")
			return
		}
		defer conn.Close()

		log := logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"stream_id":  stream.ID(),
			"preset":     stream.Options().Preset,
		})
		log.Info("Stream opened")

		serveStream(ctx, conn, stream, cfg.MaxRequestBodySize, log)

		log.WithField("frames", stream.Frames()).Info("Stream closed")
	}
}

func serveStream(ctx context.Context, conn *websocket.Conn, stream *service.Stream, readLimit int64, log *logrus.Entry) {
	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go keepAlive(conn, done)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("Stream read failed")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

		if msgType != websocket.TextMessage {
			continue
		}

		reply := handleStreamMessage(ctx, stream, data)
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(reply); err != nil {
			log.WithError(err).Warn("Stream write failed")
			return
		}
	}
}

func handleStreamMessage(ctx context.Context, stream *service.Stream, data []byte) interface{} {
	var control streamControl
	if err := json.Unmarshal(data, &control); err == nil && control.Type == "reset" {
		stream.Reset()
		return gin.H{"type": "reset", "ok": true}
	}

	var req models.FrameRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return models.ErrorResponse{Error: http.StatusText(http.StatusBadRequest), Message: "invalid frame JSON: " + err.Error()}
	}

	result, err := stream.Analyze(ctx, req)
	if err != nil {
		code := apperrors.GetStatusCode(err)
		return models.ErrorResponse{Error: http.StatusText(code), Message: errorMessage(err)}
	}
	return result
}

func keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}
