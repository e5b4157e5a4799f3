package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Config describes where the tool catalog lives. A bare File opens a
// local sqlite database, a Host opens a remote libsql database.
type Config struct {
	File      string `json:"file"`
	Host      string `json:"host"`
	Port      string `json:"port"`
	User      string `json:"user"`
	AuthToken string `json:"auth_token"`
}

func (config Config) OpenDB() (*sql.DB, error) {
	if config.Host != "" {
		return sql.Open("libsql", config.remoteURL())
	}

	if config.File == "" {
		return nil, fmt.Errorf("a database path was not specified")
	}

	_, statErr := os.Stat(config.File)
	if os.IsNotExist(statErr) {
		f, err := os.Create(config.File)
		if err != nil {
			return nil, err
		}
		f.Close()
	}

	db, err := sql.Open("sqlite", config.File)
	if err != nil {
		return nil, err
	}
	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	return db, nil
}

func (config Config) remoteURL() string {
	u := url.URL{
		Scheme: "libsql",
		Host:   config.Host,
	}
	if config.Port != "" {
		u.Host = config.Host + ":" + config.Port
	}
	if config.User != "" {
		u.User = url.User(config.User)
	}
	if config.AuthToken != "" {
		q := url.Values{}
		q.Set("authToken", config.AuthToken)
		u.RawQuery = q.Encode()
	}
	return u.String()
}
