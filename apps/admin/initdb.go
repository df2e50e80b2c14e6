package main

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/bgugger/atelier/core/content"
)

// initDB seeds the navigation and the default pages of a fresh database.
// Existing entries are left untouched.
func (cli *commandLine) initDB() error {
	ctx := context.Background()

	items, err := cli.contentRepo.QueryNavItems(ctx, false)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		navItems := []content.NavItem{
			{Title: "About & Kontakt", Slug: "about-kontakt", IconPath: null.StringFrom("About Kontakt grün.png"), Position: 1, IsActive: true},
			{Title: "Angebot", Slug: "angebot", IconPath: null.StringFrom("Angebot braun.png"), Position: 2, IsActive: true},
			{Title: "Art", Slug: "art", IconPath: null.StringFrom("Art pink.png"), Position: 3, IsActive: true},
		}
		for _, item := range navItems {
			if _, err = cli.contentRepo.CreateNavItem(ctx, item); err != nil {
				return err
			}
		}
		logger.Println("created navigation items")
	}

	if _, err = cli.contentRepo.GetPageBySlug(ctx, "about-kontakt"); err == content.ErrNotFound {
		page := content.Page{
			Slug:      "about-kontakt",
			Title:     "About & Kontakt",
			Content:   "<p>Willkommen auf meiner Webseite!</p><p>Hier können Sie mehr über mich und meine Arbeit erfahren.</p>",
			UpdatedAt: time.Now().UTC(),
		}
		if _, err = cli.contentRepo.CreatePage(ctx, page); err != nil {
			return err
		}
		logger.Println("created about-kontakt page")
	} else if err != nil {
		return err
	}

	return nil
}
