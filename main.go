package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/thangnd96/hybrid-app/api"
	"github.com/thangnd96/hybrid-app/controllers"
	"github.com/thangnd96/hybrid-app/database"
	"github.com/thangnd96/hybrid-app/geo"
	"github.com/thangnd96/hybrid-app/utils"
)

// Config collects the knobs the app reads at startup. Defaults mirror the
// shipped mobile build; env vars override them.
type Config struct {
	Addr         string
	DBPath       string
	PostsAPIBase string
	GeocoderBase string
	StorageKey   string
	OldKey       string
	Platform     string
}

// NewConfig builds the runtime configuration from env with defaults
func NewConfig() Config {
	cfg := Config{
		Addr:         ":8080",
		DBPath:       "./app.db",
		PostsAPIBase: "https://dummyjson.com",
		GeocoderBase: "https://nominatim.openstreetmap.org",
		StorageKey:   "auth-storage",
		Platform:     "web",
	}
	if p := os.Getenv("PORT"); p != "" {
		cfg.Addr = ":" + p
	}
	if v := os.Getenv("APP_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("APP_POSTS_API"); v != "" {
		cfg.PostsAPIBase = v
	}
	if v := os.Getenv("APP_GEOCODER_API"); v != "" {
		cfg.GeocoderBase = v
	}
	if v := os.Getenv("APP_STORAGE_KEY"); v != "" {
		cfg.StorageKey = v
	}
	cfg.OldKey = os.Getenv("APP_OLD_STORAGE_KEY")
	if v := os.Getenv("APP_PLATFORM"); v != "" {
		cfg.Platform = v
	}
	return cfg
}

// newLocator builds the device location source. A fixed position can be
// injected through env for hosts without a native bridge.
func newLocator() geo.Locator {
	latRaw, lonRaw := os.Getenv("APP_FIXED_LAT"), os.Getenv("APP_FIXED_LON")
	if latRaw == "" || lonRaw == "" {
		return geo.Unsupported()
	}

	lat, latErr := strconv.ParseFloat(latRaw, 64)
	lon, lonErr := strconv.ParseFloat(lonRaw, 64)
	if latErr != nil || lonErr != nil {
		log.Printf("Invalid APP_FIXED_LAT/APP_FIXED_LON, geolocation disabled")
		return geo.Unsupported()
	}

	return geo.LocatorFunc(func() (geo.Position, error) {
		return geo.Position{Latitude: lat, Longitude: lon, Timestamp: time.Now()}, nil
	})
}

func main() {
	cfg := NewConfig()

	log.Println("Starting database initialization...")
	if err := database.InitDB(cfg.DBPath); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	log.Println("Database initialized successfully!")

	store := controllers.NewSessionStore(cfg.StorageKey, cfg.OldKey)

	client := api.NewClient(cfg.PostsAPIBase)
	client.TokenSource = store.Token
	geocoder := api.NewGeocoder(cfg.GeocoderBase)

	authService := controllers.NewAuthService(client, store)
	authHandlers := controllers.NewAuthHandlers(authService, store)

	postList := controllers.NewPostList(client, controllers.DefaultPageSize)
	commentLists := controllers.NewCommentLists(client, controllers.CommentPageSize)
	postHandlers := controllers.NewPostHandlers(postList, commentLists, client)
	commentHandlers := controllers.NewCommentHandlers(commentLists, store)
	trendingHandler := controllers.NewTrendingHandler(client)
	geoHandler := controllers.NewGeoHandler(newLocator(), geocoder, geo.DetectDevice(cfg.Platform))

	// Set up routes
	http.HandleFunc("/", HomeHandler(store))
	http.HandleFunc("/register", authHandlers.RegisterUser)
	http.HandleFunc("/login", authHandlers.LoginUser)
	http.HandleFunc("/logout", authHandlers.LogoutHandler)

	http.HandleFunc("/posts", postHandlers.ShowPosts)
	http.HandleFunc("/posts/more", postHandlers.LoadMorePosts)
	http.HandleFunc("/posts/view", authHandlers.RequireSession(postHandlers.ShowPost))
	http.HandleFunc("/search", postHandlers.SearchPosts)
	http.HandleFunc("/trending", trendingHandler.ShowTrending)

	http.HandleFunc("/comments/create", commentHandlers.CreateComment)
	http.HandleFunc("/comments/more", commentHandlers.LoadMoreComments)

	http.HandleFunc("/location", geoHandler.ShowLocation)

	// Start the server
	log.Printf("Starting server on http://localhost%s/", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, nil); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// HomeHandler reports the session state the shell renders its chrome from
func HomeHandler(store *controllers.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := store.CurrentUser()
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"title":    "Hybrid News",
			"loggedIn": user != nil,
			"user":     user,
		})
	}
}
