package ports

import "github.com/VitalyChait/MetaBet/internal/domain"

// SummaryWriter escribe resúmenes al output tabular de forma incremental:
// cada Append debe quedar durable aunque el run se interrumpa después.
type SummaryWriter interface {
	Append(s domain.UserSummary) error
	Close() error
}
