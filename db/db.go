package db

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq" // Import postgres driver
	_ "modernc.org/sqlite"
)

const mysqlTLSConfigName = "court-finder"

type Options struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	TLS          TLSOptions
}

// TLSOptions carries PEM content or file paths for the MySQL client TLS setup.
type TLSOptions struct {
	CA         string
	Cert       string
	Key        string
	SkipVerify bool
}

func (o TLSOptions) enabled() bool {
	return o.CA != "" || o.Cert != "" || o.Key != "" || o.SkipVerify
}

// Connect opens the pool for the configured adapter and verifies it with a ping.
func Connect(opts Options, timeout time.Duration) (*sql.DB, error) {
	dialect, err := ParseDialect(opts.Driver)
	if err != nil {
		return nil, err
	}
	if opts.TLS.enabled() && dialect != MySQL {
		return nil, errors.New("DB TLS options apply to mysql only; configure sslmode/sslrootcert in the postgres DSN")
	}

	var conn *sql.DB
	switch dialect {
	case MySQL:
		connector, cErr := mysqlConnector(opts)
		if cErr != nil {
			return nil, cErr
		}
		conn = sql.OpenDB(connector)
	case SQLite:
		conn, err = sql.Open("sqlite", sqliteDSN(opts.DSN))
	default:
		conn, err = sql.Open("postgres", opts.DSN)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	configurePool(conn, dialect, opts.MaxOpenConns)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err = conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}

	return conn, nil
}

func configurePool(conn *sql.DB, dialect Dialect, maxOpen int) {
	if dialect == SQLite {
		// Один писатель; для :memory: это ещё и единственная копия базы
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
		conn.SetConnMaxLifetime(0)
		return
	}
	if maxOpen <= 0 {
		maxOpen = 5
	}
	conn.SetMaxOpenConns(maxOpen)
	conn.SetMaxIdleConns(maxOpen)
	conn.SetConnMaxLifetime(5 * time.Minute)
}

func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func mysqlConnector(opts Options) (driver.Connector, error) {
	cfg, err := mysql.ParseDSN(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid mysql DSN: %w", err)
	}
	cfg.ParseTime = true
	// RowsAffected must count matched rows, not changed ones: a reorder that
	// rewrites an unchanged position is still a hit.
	cfg.ClientFoundRows = true

	if opts.TLS.enabled() {
		tlsConf, err := buildTLSConfig(opts.TLS)
		if err != nil {
			return nil, err
		}
		if err := mysql.RegisterTLSConfig(mysqlTLSConfigName, tlsConf); err != nil {
			return nil, fmt.Errorf("failed to register mysql TLS config: %w", err)
		}
		cfg.TLSConfig = mysqlTLSConfigName
	}

	return mysql.NewConnector(cfg)
}

func buildTLSConfig(o TLSOptions) (*tls.Config, error) {
	conf := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: o.SkipVerify,
	}

	if o.CA != "" {
		caPEM, err := readPEM(o.CA)
		if err != nil {
			return nil, fmt.Errorf("failed to read DB CA: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caPEM) {
			return nil, errors.New("DB CA contains no valid certificates")
		}
		conf.RootCAs = pool
	}

	if o.Cert != "" || o.Key != "" {
		if o.Cert == "" || o.Key == "" {
			return nil, errors.New("DB client certificate and key must be set together")
		}
		certPEM, err := readPEM(o.Cert)
		if err != nil {
			return nil, fmt.Errorf("failed to read DB client cert: %w", err)
		}
		keyPEM, err := readPEM(o.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to read DB client key: %w", err)
		}
		pair, err := tls.X509KeyPair(certPEM, keyPEM)
		if err != nil {
			return nil, fmt.Errorf("invalid DB client key pair: %w", err)
		}
		conf.Certificates = []tls.Certificate{pair}
	}

	return conf, nil
}

// readPEM accepts either inline PEM content or a path to a PEM file.
func readPEM(v string) ([]byte, error) {
	if strings.HasPrefix(strings.TrimSpace(v), "-----BEGIN") {
		return []byte(v), nil
	}
	return os.ReadFile(v)
}
