package audit

import "context"

// Revoker records superseded token ids to the audit trail. There is no
// token blacklist yet; the trail is what makes a later one backfillable.
type Revoker struct {
	audit AuditLogger
}

func NewRevoker(audit AuditLogger) *Revoker {
	return &Revoker{audit: audit}
}

func (r *Revoker) RevokeToken(ctx context.Context, jti string) {
	if r == nil || r.audit == nil || jti == "" {
		return
	}
	r.audit.LogEvent(ctx, "system", ActionTokenRefresh, "token:"+jti, "superseded by refresh")
}
