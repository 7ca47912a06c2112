package main

import (
	"fmt"
	"log"

	"guiche/internal/catalog"
	"guiche/internal/shared/config"
	"guiche/internal/shared/database"

	"github.com/shopspring/decimal"
)

type Seeder struct {
	repo catalog.Repository
}

func main() {
	fmt.Println("Starting catalog seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{repo: catalog.NewRepository(db.GetPostgreSQL())}

	fmt.Println("Cleaning catalog tables...")
	if err := seeder.repo.DeleteAll(); err != nil {
		log.Fatalf("Failed to clean catalog: %v", err)
	}

	fmt.Println("Seeding events...")
	for _, event := range storefrontEvents() {
		if err := seeder.repo.Create(&event); err != nil {
			log.Fatalf("Failed to seed event %s: %v", event.ID, err)
		}
		fmt.Printf("  seeded %s (%d categories)\n", event.ID, len(event.Categories))
	}

	fmt.Println("Seeding completed.")
}

func price(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// storefrontEvents returns the promoter's current listings.
func storefrontEvents() []catalog.Event {
	return []catalog.Event{
		{
			ID:           "festa-da-uva-passaporte",
			Title:        "Passaporte Camarote | Festa da Uva",
			BannerURL:    "https://cdn.guicheweb.com.br/gw-bucket/imagenseventos/05-12-2025_21-35-34.png",
			CardImageURL: "https://cdn.guicheweb.com.br/gw-bucket/imagenseventos/05-12-2025_21-35-29.jpg",
			Venue:        "Arena de Shows da Festa da Uva",
			City:         "CAXIAS DO SUL",
			State:        "RS",
			Date:         "19/02/2026",
			EndDate:      "08/03/2026",
			Time:         "20:00H",
			Description:  "Henrique & Juliano trazem seus maiores sucessos para a Festa da Uva 2026.",
			Info:         "Menores de 14 anos entram acompanhados.",
			MapURL:       "https://images.unsplash.com/photo-1524368535928-5b5e00ddc76b?auto=format&fit=crop&q=80&w=800&h=400",
			Categories: []catalog.TicketCategory{
				{
					Name:  "Arquibancada",
					Color: "#d4a373",
					Tiers: []catalog.TicketTier{
						{ID: "arq-sol", Name: "Arquibancada (Solidária)", Price: price(60), Fee: price(9), Batch: "1. LOTE + 1KG ALIMENTO", Description: "Entrega de 1kg de alimento"},
						{ID: "arq-int", Name: "Arquibancada (Inteira)", Price: price(100), Fee: price(15), Batch: "1. LOTE", Description: "Acesso normal"},
					},
				},
			},
		},
		{
			ID:           "henrique-juliano-uva",
			Title:        "Henrique e Juliano | Festa da Uva",
			BannerURL:    "https://cdn.guicheweb.com.br/gw-bucket/imagenseventos/05-12-2025_16-05-52.png",
			CardImageURL: "https://cdn.guicheweb.com.br/gw-bucket/imagenseventos/05-12-2025_16-05-43.png",
			Venue:        "Arena de Shows da Festa da Uva",
			City:         "CAXIAS DO SUL",
			State:        "RS",
			Date:         "06/03/2026",
			Time:         "20:00H",
			Description:  "A maior dupla sertaneja do Brasil em uma noite inesquecível.",
			Info:         "Abertura dos portões às 18h.",
			MapURL:       "https://images.unsplash.com/photo-1526726538690-5cbf956ae2fd?auto=format&fit=crop&q=80&w=800&h=400",
			Categories: []catalog.TicketCategory{
				{
					Name:  "VIP",
					Color: "#fb5607",
					Tiers: []catalog.TicketTier{
						{ID: "vip-meia", Name: "VIP (Meia)", Price: price(150), Fee: price(22.5), Batch: "2. LOTE", Description: "Frente ao palco"},
						{ID: "vip-int", Name: "VIP (Inteira)", Price: price(300), Fee: price(45), Batch: "2. LOTE", Description: "Frente ao palco"},
					},
				},
			},
		},
		{
			ID:           "conquista-privilege",
			Title:        "Conquista Privilege Festival - Henrique e Juliano",
			BannerURL:    "https://cdn.guicheweb.com.br/gw-bucket/imagenseventos/22-12-2025_14-52-34.png",
			CardImageURL: "https://cdn.guicheweb.com.br/gw-bucket/imagenseventos/22-12-2025_14-52-32.jpg",
			Venue:        "Estádio Lomanto Junior",
			City:         "VITORIA DA CONQUISTA",
			State:        "BA",
			Date:         "21/03/2026",
			Time:         "19:00H",
			Description:  "Um festival premium no coração da Bahia.",
			Info:         "Censura 16 anos.",
			MapURL:       "https://images.unsplash.com/photo-1506157786151-b8491531f063?auto=format&fit=crop&q=80&w=800&h=400",
			Categories: []catalog.TicketCategory{
				{
					Name:  "Pista",
					Color: "#2196F3",
					Tiers: []catalog.TicketTier{
						{ID: "ba-pista", Name: "Pista", Price: price(80), Fee: price(12), Batch: "1. LOTE", Description: "Setor padrão"},
					},
				},
			},
		},
		{
			ID:           "hj-guaxupe",
			Title:        "Henrique e Juliano - Guaxupé",
			BannerURL:    "https://cdn.guicheweb.com.br/gw-bucket/imagenseventos/30-12-2025_07-58-54.png",
			CardImageURL: "https://cdn.guicheweb.com.br/gw-bucket/imagenseventos/30-12-2025_07-58-51.jpg",
			Venue:        "Complexo Vila Olímpica",
			City:         "GUAXUPÉ",
			State:        "MG",
			Date:         "27/03/2026",
			Time:         "21:00H",
			Description:  "Evento exclusivo na Vila Olímpica de Guaxupé.",
			Info:         "Vendas oficiais iniciadas.",
			MapURL:       "https://images.unsplash.com/photo-1533174072545-7a4b6ad7a6c3?auto=format&fit=crop&q=80&w=800&h=400",
			Categories: []catalog.TicketCategory{
				{
					Name:  "Arena",
					Color: "#8338ec",
					Tiers: []catalog.TicketTier{
						{ID: "mg-arena", Name: "Arena", Price: price(90), Fee: price(13.5), Batch: "1. LOTE", Description: "Acesso total"},
					},
				},
			},
		},
		{
			ID:           "manifesto-goiania",
			Title:        "Manifesto Musical - Goiânia",
			BannerURL:    "https://cdn.guicheweb.com.br/gw-bucket/imagenseventos/16-01-2026_11-43-33.png",
			CardImageURL: "https://cdn.guicheweb.com.br/gw-bucket/imagenseventos/06-01-2026_15-46-53.jpg",
			Venue:        "Estádio Serra Dourada",
			City:         "GOIANIA",
			State:        "GO",
			Date:         "02/05/2026",
			Time:         "16:00H",
			Description:  "A turnê exclusiva 2026 do Manifesto Musical chega à capital do sertanejo.",
			Info:         "Proibida a entrada de menores de 16 anos desacompanhados.",
			MapURL:       "https://images.unsplash.com/photo-1524368535928-5b5e00ddc76b?auto=format&fit=crop&q=80&w=800&h=400",
			Categories: []catalog.TicketCategory{
				{
					Name:  "Pista",
					Color: "#2196F3",
					Tiers: []catalog.TicketTier{
						{ID: "go-pista-meia", Name: "Pista (Meia)", Price: price(70), Fee: price(10.5), Batch: "1. LOTE", Description: "Acesso normal"},
						{ID: "go-pista-int", Name: "Pista (Inteira)", Price: price(140), Fee: price(21), Batch: "1. LOTE", Description: "Acesso normal"},
					},
				},
			},
		},
		{
			ID:           "exponorte-2026",
			Title:        "Exponorte 2026",
			BannerURL:    "https://cdn.guicheweb.com.br/gw-bucket/imagenseventos/21-11-2025_12-14-09.png",
			CardImageURL: "https://cdn.guicheweb.com.br/gw-bucket/imagenseventos/21-11-2025_12-20-47.jpg",
			Venue:        "Parque de Exposições de Sinop",
			City:         "SINOP",
			State:        "MT",
			Date:         "22/05/2026",
			EndDate:      "31/05/2026",
			Time:         "18:00H",
			Description:  "A maior feira agropecuária do Norte de Mato Grosso.",
			Info:         "Ingresso nominal.",
			MapURL:       "https://images.unsplash.com/photo-1533174072545-7a4b6ad7a6c3?auto=format&fit=crop&q=80&w=800&h=400",
			Categories: []catalog.TicketCategory{
				{
					Name:  "Passaporte Geral",
					Color: "#4CAF50",
					Tiers: []catalog.TicketTier{
						{ID: "mt-pass-meia", Name: "Passaporte (Meia)", Price: price(250), Fee: price(37.5), Batch: "LOTE ÚNICO", Description: "Válido para todos os dias"},
					},
				},
			},
		},
		{
			ID:           "manifesto-bh",
			Title:        "Manifesto Musical - Belo Horizonte",
			BannerURL:    "https://cdn.guicheweb.com.br/gw-bucket/imagenseventos/19-01-2026_08-55-30.png",
			CardImageURL: "https://cdn.guicheweb.com.br/gw-bucket/imagenseventos/19-01-2026_08-55-27.jpg",
			Venue:        "Estádio Mineirão",
			City:         "BELO HORIZONTE",
			State:        "MG",
			Date:         "18/07/2026",
			Time:         "14:00H",
			Description:  "MANIFESTO MUSICAL BELO HORIZONTE | No Gigante da Pampulha.",
			Info:         "Abertura dos portões às 14h.",
			MapURL:       "https://images.unsplash.com/photo-1526726538690-5cbf956ae2fd?auto=format&fit=crop&q=80&w=800&h=400",
			Categories: []catalog.TicketCategory{
				{
					Name:  "Gramado",
					Color: "#4CAF50",
					Tiers: []catalog.TicketTier{
						{ID: "bh-gram-meia", Name: "Gramado (Meia)", Price: price(120), Fee: price(18), Batch: "1. LOTE", Description: "Acesso ao campo"},
					},
				},
			},
		},
		{
			ID:           "manifesto-recife",
			Title:        "Manifesto Musical - Recife",
			BannerURL:    "https://cdn.guicheweb.com.br/gw-bucket/imagenseventos/18-01-2026_21-56-20.png",
			CardImageURL: "https://cdn.guicheweb.com.br/gw-bucket/imagenseventos/18-01-2026_21-56-14.jpg",
			Venue:        "Classic Hall",
			City:         "OLINDA",
			State:        "PE",
			Date:         "08/08/2026",
			Time:         "21:00H",
			Description:  "O espetáculo do Manifesto Musical chega ao Pernambuco.",
			Info:         "Censura 18 anos.",
			MapURL:       "https://images.unsplash.com/photo-1506157786151-b8491531f063?auto=format&fit=crop&q=80&w=800&h=400",
			Categories: []catalog.TicketCategory{
				{
					Name:  "Front Stage",
					Color: "#E91E63",
					Tiers: []catalog.TicketTier{
						{ID: "pe-front-meia", Name: "Front (Meia)", Price: price(150), Fee: price(22.5), Batch: "2. LOTE", Description: "Setor Premium"},
					},
				},
			},
		},
	}
}
