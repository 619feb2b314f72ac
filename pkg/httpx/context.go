package httpx

type ctxKey string

// CtxKeyUserID carries the authenticated user's id once authentication
// middleware has run. Used by the per-user rate limiter key extractor.
const CtxKeyUserID ctxKey = "user_id"
