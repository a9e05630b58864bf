package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	DBUrl         string
	SessionSecret string
	// AdminPassHash is the bcrypt hash of the admin password. Deliberately
	// optional: when empty, login answers 500 "server misconfigured" instead
	// of refusing to boot, matching the behavior admins actually observe.
	AdminPassHash string
	Debug         bool
}

func ParseFlags() (cfg Config, err error) {
	return parse(flag.CommandLine, os.Args[1:])
}

func parse(fs *flag.FlagSet, args []string) (cfg Config, err error) {
	// .env is a convenience for local runs, missing file is fine
	godotenv.Load()

	var host string
	fs.StringVar(&host, "host", "0.0.0.0", "listen host name (default 0.0.0.0)")
	var port uint
	fs.UintVar(&port, "port", 80, "listen port number (default 80)")
	fs.StringVar(&cfg.DBUrl, "db-url", envOr("SORGU_DB", "sorgu.sqlite"), "path to SQLite3 DB file (default sorgu.sqlite)")
	fs.StringVar(&cfg.SessionSecret, "session-secret", os.Getenv("SESSION_SECRET"), "secret key for session cookie signing")
	fs.StringVar(&cfg.AdminPassHash, "admin-password-hash", os.Getenv("ADMIN_PASSWORD_HASH"), "bcrypt hash of the admin password")
	fs.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	err = fs.Parse(args)
	if err != nil {
		return
	}

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))

	if cfg.SessionSecret == "" {
		err = errors.New("missing parameter -session-secret")
	}

	return
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
