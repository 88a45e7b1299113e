package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// Backends named in ErrorDump.Backend.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
)

// redisReply matches replies from go-redis without importing the client here.
type redisReply interface {
	error
	RedisError()
}

// ErrorDump is the log-only view of an error chain. Snapshot store failures carry the
// backend that produced them so degraded carts can be traced to postgres, sqlite or redis.
type ErrorDump struct {
	TopMessage string   `json:"top_message"`
	Code       Code     `json:"code,omitempty"`
	Chain      []string `json:"chain,omitempty"`
	Backend    string   `json:"backend,omitempty"`

	DBCode       string `json:"db_code,omitempty"`
	DBConstraint string `json:"db_constraint,omitempty"`
	DBTable      string `json:"db_table,omitempty"`
	DBDetail     string `json:"db_detail,omitempty"`
	DBMessage    string `json:"db_message,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}
	d := ErrorDump{TopMessage: err.Error()}
	if te := As(err); te != nil {
		d.Code = te.Code()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}
	d.fillBackend(err)
	return d
}

func (d *ErrorDump) fillBackend(err error) {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		d.Backend = BackendPostgres
		d.DBCode, d.DBConstraint, d.DBTable = pgxErr.Code, pgxErr.ConstraintName, pgxErr.TableName
		d.DBDetail, d.DBMessage = pgxErr.Detail, pgxErr.Message
		return
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		d.Backend = BackendPostgres
		d.DBCode, d.DBConstraint, d.DBTable = string(pqErr.Code), pqErr.Constraint, pqErr.Table
		d.DBDetail, d.DBMessage = pqErr.Detail, pqErr.Message
		return
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		d.Backend = BackendSQLite
		d.DBCode = fmt.Sprintf("%d/%d", int(liteErr.Code), int(liteErr.ExtendedCode))
		d.DBMessage = liteErr.Error()
		return
	}
	var reply redisReply
	if errors.As(err, &reply) {
		d.Backend = BackendRedis
		d.DBMessage = reply.Error()
	}
}

// Fields flattens the dump for structured logging, omitting empty database fields.
func (d ErrorDump) Fields() map[string]any {
	fields := map[string]any{
		"error":       d.TopMessage,
		"error_code":  d.Code,
		"error_chain": d.Chain,
	}
	for key, value := range map[string]string{
		"error_backend": d.Backend,
		"db_code":       d.DBCode,
		"db_constraint": d.DBConstraint,
		"db_table":      d.DBTable,
		"db_detail":     d.DBDetail,
		"db_message":    d.DBMessage,
	} {
		if value != "" {
			fields[key] = value
		}
	}
	return fields
}
