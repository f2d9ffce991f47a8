// Command seed loads a starter content set into the document store:
// service areas, gallery categories and photos, and a few news articles.
// Usage: go run cmd/seed/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ustaweb/content-manager/internal/config"
	"github.com/ustaweb/content-manager/internal/content"
	"github.com/ustaweb/content-manager/internal/elastic"
	"github.com/ustaweb/content-manager/internal/logger"
	"github.com/ustaweb/content-manager/internal/models"
	"github.com/ustaweb/content-manager/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load(config.GetConfigPath("config.yml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logg, err := logger.NewLogger(true)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logg.Sync() }()

	ctx := context.Background()

	client, err := elastic.NewClient(ctx, cfg.Elasticsearch, logg)
	if err != nil {
		return err
	}
	if err := elastic.EnsureCollections(ctx, client, logg); err != nil {
		return err
	}

	manager := content.NewManager(store.NewElasticStore(client, logg), nil, logg)

	if err := seedServiceAreas(ctx, manager); err != nil {
		return err
	}
	categoryIDs, err := seedGalleryCategories(ctx, manager)
	if err != nil {
		return err
	}
	if err := seedGalleryItems(ctx, manager, categoryIDs); err != nil {
		return err
	}
	if err := seedNews(ctx, manager); err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Seed data loaded")
	return nil
}

func seedServiceAreas(ctx context.Context, manager *content.Manager) error {
	areas := []models.ServiceArea{
		{
			Title:       "Kombi Servisi",
			Description: "Her marka kombi bakım ve onarımı",
			Content:     "<p>Tüm markaların kombilerinde periyodik bakım, arıza tespiti ve parça değişimi yapıyoruz.</p>",
			ImageURL:    "/uploads/hizmetler/kombi-servisi.jpg",
			Icon:        "flame",
			Order:       1,
			IsActive:    true,
		},
		{
			Title:       "Petek Temizliği",
			Description: "Makineli petek temizliği ve verim artışı",
			Content:     "<p>Makineli yıkama ile peteklerinizi ilk günkü verimine döndürüyoruz.</p>",
			ImageURL:    "/uploads/hizmetler/petek-temizligi.jpg",
			Icon:        "radiator",
			Order:       2,
			IsActive:    true,
		},
		{Title: "Doğalgaz Tesisatı", Description: "Projeli doğalgaz tesisat döşeme", Icon: "pipe", Order: 3, IsActive: true},
		{Title: "Kaçak Tespiti", Description: "Cihazla su ve gaz kaçağı tespiti", Icon: "search", Order: 4, IsActive: true},
		{Title: "Su Tesisatı", Description: "Sıhhi tesisat kurulum ve tamiratı", Icon: "droplet", Order: 5, IsActive: true},
	}

	for _, area := range areas {
		if _, err := manager.ServiceAreas.Add(ctx, area); err != nil {
			return fmt.Errorf("seed service area %q: %w", area.Title, err)
		}
	}
	return nil
}

func seedGalleryCategories(ctx context.Context, manager *content.Manager) (map[string]string, error) {
	categories := []models.GalleryCategory{
		{Name: "Kombi Montajı", Description: "Kombi kurulum çalışmalarımız", Icon: "🔥", Color: "#d9480f", Order: 1, IsActive: true},
		{Name: "Tesisat İşleri", Description: "Su ve doğalgaz tesisatı", Icon: "🔧", Color: "#1971c2", Order: 2, IsActive: true},
		{Name: "Tamamlanan Projeler", Description: "Teslim ettiğimiz işler", Icon: "✅", Color: "#2f9e44", Order: 3, IsActive: true},
	}

	ids := make(map[string]string, len(categories))
	for _, category := range categories {
		created, err := manager.GalleryCategories.Add(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("seed gallery category %q: %w", category.Name, err)
		}
		ids[models.Slugify(created.Name)] = created.ID
	}
	return ids, nil
}

func seedGalleryItems(ctx context.Context, manager *content.Manager, categoryIDs map[string]string) error {
	slugs := []string{"kombi-montaji", "tesisat-isleri", "tamamlanan-projeler"}

	// 14 photos: more than one 12-per-page gallery page.
	for i := 1; i <= 14; i++ {
		item := models.GalleryItem{
			Title:        fmt.Sprintf("Çalışma %d", i),
			ImageURL:     fmt.Sprintf("/uploads/galeri/calisma-%02d.jpg", i),
			ThumbnailURL: fmt.Sprintf("/uploads/galeri/thumbs/calisma-%02d.jpg", i),
			CategoryID:   categoryIDs[slugs[(i-1)%len(slugs)]],
			Order:        i,
			IsActive:     true,
			IsFeatured:   i <= 4,
		}
		if _, err := manager.GalleryItems.Add(ctx, item); err != nil {
			return fmt.Errorf("seed gallery item %d: %w", i, err)
		}
	}
	return nil
}

func seedNews(ctx context.Context, manager *content.Manager) error {
	articles := []models.NewsArticle{
		{
			Title:       "Yeni Şubemiz Açıldı",
			Subtitle:    "Artık iki noktada hizmetinizdeyiz",
			Description: "İkinci şubemiz hizmete girdi.",
			Content:     "<p>Büyüyen ekibimizle artık iki şubede hizmet veriyoruz.</p>",
			Tags:        []string{"duyuru"},
			Order:       1,
			IsActive:    true,
			Featured:    true,
		},
		{
			Title:    "Kış Öncesi Kombi Bakımı Kampanyası",
			Content:  "<p>Ekim ayı boyunca kombi bakımında indirim uyguluyoruz. <strong>Randevu</strong> için bize ulaşın.</p>",
			Tags:     []string{"kampanya", "kombi"},
			Order:    2,
			IsActive: true,
		},
		{
			Title:    "Petek Temizliğinde Makineli Dönem",
			Content:  "<p>Yeni makineli temizlik ekipmanımız ile petekleriniz ilk günkü verimine kavuşuyor.</p>",
			Tags:     []string{"petek"},
			Order:    3,
			IsActive: true,
		},
	}

	for _, article := range articles {
		if _, err := manager.News.Add(ctx, article); err != nil {
			return fmt.Errorf("seed news %q: %w", article.Title, err)
		}
	}
	return nil
}
