package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	addrFlag := flag.String("addr", "", "listen address (default :8080, overrides stored setting)")
	dbFlag := flag.String("db", "", "path to the settings database (default ~/.mudra/mudra.db)")
	cameraFlag := flag.Int("camera", -1, "camera device ID (overrides stored setting)")
	webFlag := flag.String("web", "", "path to the dashboard static files (overrides stored setting)")
	flag.Parse()

	fmt.Println("Mudra - Hand Gesture Recognition")

	dbPath := *dbFlag
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}

		dataDir := filepath.Join(homeDir, ".mudra")
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		dbPath = filepath.Join(dataDir, "mudra.db")
	}

	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	settings := st.Settings()

	addr := *addrFlag
	if addr == "" {
		if stored, err := settings.Get(store.SettingListenAddr); err == nil {
			addr = stored
		} else {
			addr = ":8080"
		}
	}

	cameraID := *cameraFlag
	if cameraID < 0 {
		cameraID = settings.GetInt(store.SettingCameraID, 0)
	}

	webDir := *webFlag
	if webDir == "" {
		if stored, err := settings.Get(store.SettingStaticDir); err == nil {
			webDir = stored
		} else {
			webDir = findWebDir()
		}
	}
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	application := app.New(app.Config{
		Store:         st,
		CameraID:      cameraID,
		MotionThresh:  settings.GetFloat(store.SettingMotionThresh, 1.0),
		MinConfidence: settings.GetFloat(store.SettingMinConfidence, 0.5),
	})

	hub := server.NewHub()
	application.SetPublisher(hub)

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    application.Camera(),
		History:   application,
		Hub:       hub,
		Metrics:   application.Metrics(),
	})

	go func() {
		fmt.Printf("Starting server on %s\n", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := application.Start(); err != nil {
		log.Printf("Failed to start detection pipeline: %v", err)
	} else {
		application.SetEnabled(settings.GetBool(store.SettingDetectionOn, true))
	}

	trayApp := tray.New()
	application.SetOnResult(func(r gesture.Result) {
		meta := r.Meta()
		trayApp.SetLastGesture(meta.Glyph, meta.Name)
	})
	trayApp.OnToggle(func(enabled bool) {
		application.SetEnabled(enabled)
		if err := settings.Set(store.SettingDetectionOn, fmt.Sprintf("%t", enabled)); err != nil {
			log.Printf("Failed to persist detection setting: %v", err)
		}
	})
	trayApp.OnDashboard(func() {
		openBrowser(dashboardURL(addr))
	})
	trayApp.OnQuit(func() {
		application.Stop()
	})

	// Blocks until Quit is selected from the tray menu.
	trayApp.Run()
}

// dashboardURL builds a browsable URL from the listen address.
func dashboardURL(addr string) string {
	if addr != "" && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// openBrowser opens the URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		log.Printf("Dashboard available at %s", url)
		return
	}

	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v (dashboard at %s)", err, url)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.mudra/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".mudra", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
