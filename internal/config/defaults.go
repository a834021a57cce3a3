package config

const (
	defaultOutputPath        = "assets/data/content.json"
	defaultCachePath         = "assets/data/playlist_cache.json"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultExtension         = ".md"
	defaultOEmbedBaseURL     = "https://www.youtube.com/oembed"
	defaultOEmbedTimeout     = 10
	defaultThumbnailTemplate = "https://img.youtube.com/vi/%s/hqdefault.jpg"
	defaultChannelColor      = "#71717a"
	lockFileSuffix           = ".lock"
)

// Default returns a Config populated with repository defaults.
//
// Channels is left empty on purpose: normalize fills it with the built-in
// table only when the configuration file does not declare its own.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputPath: defaultOutputPath,
			CachePath:  defaultCachePath,
		},
		Documents: Documents{
			Extension:  defaultExtension,
			SkipHidden: true,
			WriteBack:  true,
		},
		OEmbed: OEmbed{
			Enabled:        true,
			BaseURL:        defaultOEmbedBaseURL,
			TimeoutSeconds: defaultOEmbedTimeout,
		},
		Index: Index{
			ThumbnailURLTemplate: defaultThumbnailTemplate,
			DefaultColor:         defaultChannelColor,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// BuiltinChannels returns the channel display table shipped with vaultindex.
func BuiltinChannels() map[string]Channel {
	return map[string]Channel{
		"math": {
			Color: "#3b82f6",
			Locales: map[string]ChannelLocale{
				"en": {Title: "Mathematics", Description: "Master math concepts from basics to advanced topics"},
				"es": {Title: "Matemáticas", Description: "Domina conceptos matemáticos desde lo básico hasta temas avanzados"},
				"de": {Title: "Mathematik", Description: "Meistere mathematische Konzepte von den Grundlagen bis zu fortgeschrittenen Themen"},
			},
		},
		"chemistry": {
			Color: "#10b981",
			Locales: map[string]ChannelLocale{
				"en": {Title: "Chemistry", Description: "Explore the fascinating world of chemical reactions"},
				"es": {Title: "Química", Description: "Explora el fascinante mundo de las reacciones químicas"},
				"de": {Title: "Chemie", Description: "Entdecke die faszinierende Welt der chemischen Reaktionen"},
			},
		},
		"audiobook": {
			Color: "#f59e0b",
			Locales: map[string]ChannelLocale{
				"en": {Title: "Audiobooks", Description: "Listen to engaging stories and educational content"},
				"es": {Title: "Audiolibros", Description: "Escucha historias cautivadoras y contenido educativo"},
				"de": {Title: "Hörbücher", Description: "Höre fesselnde Geschichten und Bildungsinhalte"},
			},
		},
		"gallery": {
			Color: "#ec4899",
			Locales: map[string]ChannelLocale{
				"en": {Title: "AI Vivid Dreams", Description: "Journey into the boundless imagination of AI art"},
				"es": {Title: "Sueños Vívidos de IA", Description: "Viaje a la imaginación ilimitada del arte de la IA"},
				"de": {Title: "KI Lebendige Träume", Description: "Reise in die grenzenlose Fantasie der KI-Kunst"},
			},
		},
	}
}
