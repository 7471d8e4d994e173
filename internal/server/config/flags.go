package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/authgate/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-p string   public path prefix (e.g., "/login/rest/")
//	-k string   token authority base URL
//	-t int      token authority timeout, seconds
//	-s string   token authority HS256 secret
//	-d string   PostgreSQL DSN
//	-r string   Redis address for failed-login throttling
//	-m int      failed logins allowed per window
//	-w int      failed-login window, minutes
//	-l string   log backend: slog | zap
//
// Only recognised flags are picked out of os.Args (see flagx.FilterArgs), so
// -c/-config handled by parseJson does not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-p", "-k", "-t", "-s", "-d", "-r", "-m", "-w", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to serve the login API")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to serve gRPC health")
	fs.StringVar(&config.PublicPathPrefix, "p", config.PublicPathPrefix, "public path prefix used in action URLs")
	fs.StringVar(&config.AuthorityBaseURL, "k", config.AuthorityBaseURL, "token authority base URL")
	authorityTimeout := fs.Int("t", int(config.AuthorityTimeout.Seconds()), "token authority timeout (in seconds)")
	fs.StringVar(&config.AuthoritySecret, "s", config.AuthoritySecret, "token authority secret key")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.IntVar(&config.MaxFailedLogins, "m", config.MaxFailedLogins, "failed logins allowed per window")
	failedLoginWindow := fs.Int("w", int(config.FailedLoginWindow.Minutes()), "failed login window (in minutes)")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend (slog|zap)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AuthorityTimeout = time.Duration(*authorityTimeout) * time.Second
	config.FailedLoginWindow = time.Duration(*failedLoginWindow) * time.Minute
}
