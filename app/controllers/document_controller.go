package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/app/repository"
	"github.com/rentcourt/ftpr/internal/pkg/docstore"
	"github.com/rentcourt/ftpr/internal/pkg/documents"
	"github.com/rentcourt/ftpr/internal/pkg/metrics/counter"
	"github.com/rentcourt/ftpr/internal/pkg/usercontext"
)

// ArchiveLinkTTL is how long a presigned archive link stays valid.
const ArchiveLinkTTL = 15 * time.Minute

func sendPDF(c *fiber.Ctx, tmpl documents.Template, kind, filename string, body []byte) error {
	if err := counter.AddDocumentDownload(tmpl.Key, kind); err != nil {
		log.Warnf("[Documents] Failed to count %s download: %v", tmpl.Key, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(filename)
	return c.Status(fiber.StatusOK).Send(body)
}

// HandleBlankDocument renders a template with every field left blank.
func HandleBlankDocument(c *fiber.Ctx) error {
	tmpl, err := documents.Lookup(c.Params("template"))
	if err != nil {
		return FailError(c, err)
	}
	body, err := documents.Render(tmpl, documents.Fields{})
	if err != nil {
		return FailError(c, err)
	}
	return sendPDF(c, tmpl, counter.KindBlank, tmpl.Filename(""), body)
}

// caseForDocument loads the case and its landlord profile. A missing
// profile leaves the landlord block blank.
func caseForDocument(c *fiber.Ctx) (*models.LegalCase, *models.Profile, error) {
	repos := GetServices().Repos
	legalCase, err := repos.LegalCase.GetByID(scopeOf(usercontext.GetUserContext(c)), c.Params("id"))
	if err != nil {
		return nil, nil, err
	}
	landlord, err := repos.Profile.GetByID(legalCase.LandlordID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, nil, err
		}
		landlord = nil
	}
	return legalCase, landlord, nil
}

// HandleCaseDocument renders a template filled from the case.
func HandleCaseDocument(c *fiber.Ctx) error {
	tmpl, err := documents.Lookup(c.Params("docType"))
	if err != nil {
		return FailError(c, err)
	}
	legalCase, landlord, err := caseForDocument(c)
	if err != nil {
		return FailError(c, err)
	}
	body, err := documents.RenderCase(tmpl, legalCase, landlord)
	if err != nil {
		return FailError(c, err)
	}
	return sendPDF(c, tmpl, counter.KindCase, tmpl.Filename(legalCase.ID), body)
}

// HandleCaseDocumentLink returns a presigned link to the archived copy.
func HandleCaseDocumentLink(c *fiber.Ctx) error {
	tmpl, err := documents.Lookup(c.Params("docType"))
	if err != nil {
		return FailError(c, err)
	}
	store := docstore.Get()
	if store == nil {
		return Fail(c, fiber.StatusNotFound, CodeNotFound, "Document archive is not enabled.")
	}
	legalCase, err := GetServices().Repos.LegalCase.GetByID(scopeOf(usercontext.GetUserContext(c)), c.Params("id"))
	if err != nil {
		return FailError(c, err)
	}
	if legalCase.Status == models.CaseStatusNoticeDraft {
		return Fail(c, fiber.StatusNotFound, CodeNotFound, "Documents are archived once the case is submitted.")
	}

	link, err := store.PresignGet(c.UserContext(), docstore.ObjectKey(legalCase.ID, tmpl.Key), ArchiveLinkTTL)
	if err != nil {
		log.Errorf("[Docstore] Presign failed for case %s: %v", legalCase.ID, err)
		return FailError(c, err)
	}
	return OK(c, fiber.Map{
		"url":        link,
		"filename":   tmpl.Filename(legalCase.ID),
		"expires_in": int(ArchiveLinkTTL.Seconds()),
	})
}

type downloadRow struct {
	DocType string `json:"doc_type"`
	Title   string `json:"title"`
	counter.Downloads
}

// HandleAdminDocumentDownloads reports how often each form was downloaded.
func HandleAdminDocumentDownloads(c *fiber.Ctx) error {
	totals, err := counter.DocumentDownloads()
	if err != nil {
		return FailError(c, err)
	}
	rows := make([]downloadRow, 0, len(documents.All()))
	for _, t := range documents.All() {
		rows = append(rows, downloadRow{DocType: t.Key, Title: t.Title, Downloads: totals[t.Key]})
	}
	return OK(c, rows)
}
