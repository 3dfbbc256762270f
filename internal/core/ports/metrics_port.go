package ports

import (
	"time"

	"github.com/sm8ta/hospital_frontend/internal/core/domain"
)

type MetricsPort interface {
	RecordRequest(operation string, status int, start time.Time)
	RecordNavigation(to string, reason domain.DecisionReason)
}
