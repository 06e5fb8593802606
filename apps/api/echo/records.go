package echoapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/openschool/backend/core"
	"github.com/openschool/backend/csvio"
)

// recordApi exposes generic CRUD over the raw entity tables. Reads are open
// to any authenticated user; writes are admin-only.
type recordApi struct {
	store core.Store
}

func registerRecordAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := recordApi{store: deps.Store}

	rg := g.Group("/records", jwt)
	rg.GET("/:entity", api.list)
	rg.GET("/:entity/:id", api.retrieve)
	rg.POST("/:entity", api.create, adminMiddleware())
	rg.PUT("/:entity/:id", api.update, adminMiddleware())
	rg.DELETE("/:entity/:id", api.destroy, adminMiddleware())

	g.GET("/export/:entity", api.exportCSV, jwt, staffMiddleware())
}

func (api *recordApi) load(ctx echo.Context) (string, []core.Record, error) {
	entity := ctx.Param("entity")
	var records []core.Record
	if err := api.store.Load(ctx.Request().Context(), entity, &records); err != nil {
		return entity, nil, errors.Wrapf(err, "loading %s", entity)
	}
	return entity, records, nil
}

func recordID(rec core.Record) string {
	id, _ := rec["id"].(string)
	return id
}

// Handlers

func (api *recordApi) list(ctx echo.Context) error {
	_, records, err := api.load(ctx)
	if err != nil {
		return err
	}
	if records == nil {
		records = []core.Record{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *recordApi) retrieve(ctx echo.Context) error {
	_, records, err := api.load(ctx)
	if err != nil {
		return err
	}
	id := ctx.Param("id")
	for _, rec := range records {
		if recordID(rec) == id {
			return ctx.JSON(http.StatusOK, rec)
		}
	}
	return errHttpNotFound
}

func (api *recordApi) create(ctx echo.Context) error {
	entity, records, err := api.load(ctx)
	if err != nil {
		return err
	}

	rec := make(core.Record)
	if err = ctx.Bind(&rec); err != nil {
		return errors.Wrap(err, "binding record")
	}
	if recordID(rec) == "" {
		rec["id"] = fmt.Sprintf("%s-%s", entity[:1], uuid.New())
	}

	records = append(records, rec)
	if err = api.store.Save(ctx.Request().Context(), entity, records); err != nil {
		return errors.Wrapf(err, "saving %s", entity)
	}
	return ctx.JSON(http.StatusCreated, rec)
}

func (api *recordApi) update(ctx echo.Context) error {
	entity, records, err := api.load(ctx)
	if err != nil {
		return err
	}

	changes := make(core.Record)
	if err = ctx.Bind(&changes); err != nil {
		return errors.Wrap(err, "binding record")
	}

	id := ctx.Param("id")
	for i, rec := range records {
		if recordID(rec) != id {
			continue
		}
		for k, v := range changes {
			if k == "id" {
				continue
			}
			rec[k] = v
		}
		records[i] = rec
		if err = api.store.Save(ctx.Request().Context(), entity, records); err != nil {
			return errors.Wrapf(err, "saving %s", entity)
		}
		return ctx.JSON(http.StatusOK, rec)
	}
	return errHttpNotFound
}

func (api *recordApi) destroy(ctx echo.Context) error {
	entity, records, err := api.load(ctx)
	if err != nil {
		return err
	}

	id := ctx.Param("id")
	kept := records[:0]
	var found bool
	for _, rec := range records {
		if recordID(rec) == id {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return errHttpNotFound
	}

	if err = api.store.Save(ctx.Request().Context(), entity, kept); err != nil {
		return errors.Wrapf(err, "saving %s", entity)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *recordApi) exportCSV(ctx echo.Context) error {
	entity, records, err := api.load(ctx)
	if err != nil {
		return err
	}

	var columns []string
	if cols := ctx.QueryParam("columns"); cols != "" {
		for _, col := range strings.Split(cols, ",") {
			if col = strings.TrimSpace(col); col != "" {
				columns = append(columns, col)
			}
		}
	}

	var buf bytes.Buffer
	if err = csvio.SerializeRecords(&buf, records, columns); err != nil {
		return errors.Wrapf(err, "serializing %s", entity)
	}

	filename := ctx.QueryParam("filename")
	if filename == "" {
		filename = entity + ".csv"
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	return ctx.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
