package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/aic/aic/internal/client"
	"github.com/aic/aic/internal/dao"
	"github.com/aic/aic/internal/export"
	"github.com/aic/aic/internal/massaction"
	"github.com/aic/aic/internal/model"
	"github.com/aic/aic/internal/model1"
	"github.com/aic/aic/internal/render"
	"github.com/aic/aic/internal/view"
)

const (
	listTimeout   = 30 * time.Second
	exportTimeout = 10 * time.Minute
)

var errReadOnly = errors.New("endpoint is read-only, use --write to allow changes")

// listOpts are the table flags shared by the list commands.
type listOpts struct {
	sort     string
	desc     bool
	page     int
	pageSize int
	wide     bool
}

func (o *listOpts) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.sort, "sort", "", "Column to sort by")
	cmd.Flags().BoolVar(&o.desc, "desc", false, "Sort descending")
	cmd.Flags().IntVar(&o.page, "page", 1, "Page to print")
	cmd.Flags().IntVar(&o.pageSize, "page-size", 0, "Rows per page")
	cmd.Flags().BoolVarP(&o.wide, "wide", "w", false, "Show all columns")
}

func clustersCmd() *cobra.Command {
	var opts listOpts
	cmd := cobra.Command{
		Use:     "clusters",
		Aliases: []string{"cl"},
		Short:   "List clusters",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := bootstrap(true)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), listTimeout)
			defer cancel()
			cc, err := listClusters(ctx, s.factory())
			if err != nil {
				return err
			}
			opts.pageSize = s.pageSize(opts.pageSize)

			return printTable(cmd.OutOrStdout(), &render.Cluster{}, cc, opts)
		},
	}
	opts.bind(&cmd)

	return &cmd
}

func hostsCmd() *cobra.Command {
	var (
		opts      listOpts
		clusterID string
	)
	cmd := cobra.Command{
		Use:     "hosts",
		Aliases: []string{"h"},
		Short:   "List the hosts of a cluster",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := bootstrap(true)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), listTimeout)
			defer cancel()
			hh, err := listHosts(ctx, s.factory(), clusterID)
			if err != nil {
				return err
			}
			opts.pageSize = s.pageSize(opts.pageSize)

			return printTable(cmd.OutOrStdout(), &render.Host{}, hh, opts)
		},
	}
	opts.bind(&cmd)
	cmd.PersistentFlags().StringVar(&clusterID, "cluster", "", "Cluster id")
	_ = cmd.MarkPersistentFlagRequired("cluster")
	cmd.AddCommand(hostsRenameCmd(&clusterID), hostsDeleteCmd(&clusterID))

	return &cmd
}

func hostsRenameCmd(clusterID *string) *cobra.Command {
	var (
		tpl    string
		ids    []string
		dryRun bool
	)
	cmd := cobra.Command{
		Use:   "rename",
		Short: "Rename hosts from a {{n}} template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := bootstrap(true)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			all, targets, err := hostTargets(ctx, s.factory(), *clusterID, ids)
			if err != nil {
				return err
			}
			plan := view.PlanHostRename(targets, tpl)
			if err := plan.Validate(usedHostnames(all, targets)); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range plan.Candidates {
				if c.Skip {
					fmt.Fprintf(out, "%s: skipped (%s)\n", c.Current, c.Reason)
					continue
				}
				fmt.Fprintf(out, "%s -> %s\n", c.Current, c.New)
			}
			if dryRun {
				return nil
			}
			if s.cfg.Aic.IsReadOnly() {
				return errReadOnly
			}
			acc, err := hostAccessor(s.factory())
			if err != nil {
				return err
			}

			return runPlan(ctx, cmd.ErrOrStderr(), plan, "Failed to update host", "Renamed",
				func(ctx context.Context, h *dao.Host, name string) error {
					return acc.Rename(ctx, h, name)
				})
		},
	}
	cmd.Flags().StringVarP(&tpl, "template", "t", "", "Hostname template, {{n}} is replaced by a counter")
	cmd.Flags().StringSliceVar(&ids, "ids", nil, "Host ids, all hosts when empty")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the plan without applying it")
	_ = cmd.MarkFlagRequired("template")

	return &cmd
}

func hostsDeleteCmd(clusterID *string) *cobra.Command {
	var ids []string
	cmd := cobra.Command{
		Use:   "delete",
		Short: "Delete hosts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := bootstrap(true)
			if err != nil {
				return err
			}
			defer s.Close()
			if s.cfg.Aic.IsReadOnly() {
				return errReadOnly
			}

			ctx := cmd.Context()
			_, targets, err := hostTargets(ctx, s.factory(), *clusterID, ids)
			if err != nil {
				return err
			}
			plan := view.PlanHostDelete(targets)
			if err := plan.CheckIDs(); err != nil {
				return err
			}
			for _, c := range plan.Candidates {
				if c.Skip {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: skipped (%s)\n", c.Current, c.Reason)
				}
			}
			acc, err := hostAccessor(s.factory())
			if err != nil {
				return err
			}

			return runPlan(ctx, cmd.ErrOrStderr(), plan, "Failed to delete host", "Deleted",
				func(ctx context.Context, h *dao.Host, _ string) error {
					return acc.Delete(ctx, h.Path())
				})
		},
	}
	cmd.Flags().StringSliceVar(&ids, "ids", nil, "Host ids")
	_ = cmd.MarkFlagRequired("ids")

	return &cmd
}

func logsCmd() *cobra.Command {
	var clusterID string
	exportCmd := cobra.Command{
		Use:   "export",
		Short: "Upload the installation logs of a cluster to S3",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := bootstrap(true)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), exportTimeout)
			defer cancel()
			key, err := exportLogs(ctx, s, clusterID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)

			return nil
		},
	}
	exportCmd.Flags().StringVar(&clusterID, "cluster", "", "Cluster id")
	_ = exportCmd.MarkFlagRequired("cluster")

	cmd := cobra.Command{
		Use:   "logs",
		Short: "Installation logs",
	}
	cmd.AddCommand(&exportCmd)

	return &cmd
}

func (s *session) factory() *dao.APIFactory {
	return dao.NewFactory(s.conn)
}

func (s *session) pageSize(flag int) int {
	if flag > 0 {
		return flag
	}
	return s.cfg.Aic.Table.PageSize
}

func listClusters(ctx context.Context, f dao.Factory) ([]*dao.Cluster, error) {
	acc, err := dao.AccessorFor(f, &dao.ClusterRID)
	if err != nil {
		return nil, err
	}
	return model.AccessorList[*dao.Cluster](acc, "")(ctx)
}

func listHosts(ctx context.Context, f dao.Factory, clusterID string) ([]*dao.Host, error) {
	if err := client.ValidateID(clusterID); err != nil {
		return nil, err
	}
	acc, err := dao.AccessorFor(f, &dao.HostRID)
	if err != nil {
		return nil, err
	}
	return model.AccessorList[*dao.Host](acc, clusterID)(ctx)
}

func hostAccessor(f dao.Factory) (*dao.HostAccessor, error) {
	acc, err := dao.AccessorFor(f, &dao.HostRID)
	if err != nil {
		return nil, err
	}
	h, ok := acc.(*dao.HostAccessor)
	if !ok {
		return nil, fmt.Errorf("unexpected accessor %T for %s", acc, dao.HostRID)
	}
	return h, nil
}

// hostTargets returns all hosts of the cluster and those named by ids, in
// ids order. No ids selects every host.
func hostTargets(ctx context.Context, f dao.Factory, clusterID string, ids []string) ([]*dao.Host, []*dao.Host, error) {
	lctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()
	all, err := listHosts(lctx, f, clusterID)
	if err != nil {
		return nil, nil, err
	}
	if len(ids) == 0 {
		return all, all, nil
	}

	byID := make(map[string]*dao.Host, len(all))
	for _, h := range all {
		byID[h.ID] = h
	}
	targets := make([]*dao.Host, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return nil, nil, fmt.Errorf("host %s/%s: %w", clusterID, id, massaction.ErrDuplicateID)
		}
		seen[id] = struct{}{}
		h, ok := byID[id]
		if !ok {
			return nil, nil, fmt.Errorf("host %s/%s: %w", clusterID, id, client.ErrNotFound)
		}
		targets = append(targets, h)
	}

	return all, targets, nil
}

func usedHostnames(all, targets []*dao.Host) map[string]struct{} {
	ids := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		ids[t.ID] = struct{}{}
	}
	return massaction.UsedValues(all, ids, func(h *dao.Host) string { return h.ID }, (*dao.Host).Hostname)
}

// runPlan applies plan one host at a time, printing progress to w.
func runPlan(ctx context.Context, w io.Writer, plan massaction.Plan[*dao.Host], failure, done string, apply massaction.ApplyFunc[*dao.Host]) error {
	items := plan.Items()
	if len(items) == 0 {
		return massaction.ErrNothingToApply
	}
	r := massaction.NewRunner(items, apply,
		massaction.WithTitle(failure),
		massaction.WithMessage(client.Message),
		massaction.WithProgress(func(p massaction.Progress) {
			fmt.Fprintf(w, "%d/%d\n", p.Done, p.Total)
		}),
	)
	if err := r.Run(ctx); err != nil {
		return err
	}
	p := r.Progress()
	msg := fmt.Sprintf("%s %d of %d", done, p.Done, p.Total)
	if n := plan.Skipped(); n > 0 {
		msg += fmt.Sprintf(", %d skipped", n)
	}
	fmt.Fprintln(w, msg)

	return nil
}

func exportLogs(ctx context.Context, s *session, clusterID string) (string, error) {
	if err := client.ValidateID(clusterID); err != nil {
		return "", err
	}
	acc, err := dao.AccessorFor(s.factory(), &dao.ClusterRID)
	if err != nil {
		return "", err
	}
	o, err := acc.Get(ctx, clusterID)
	if err != nil {
		return "", err
	}
	cl, ok := o.(*dao.Cluster)
	if !ok {
		return "", fmt.Errorf("unexpected object %T", o)
	}

	cfg := s.cfg.Aic.ExportConfig()
	up, err := export.NewS3Client(ctx, cfg)
	if err != nil {
		return "", err
	}
	e, err := export.NewLogExporter(s.conn, up, cfg)
	if err != nil {
		return "", err
	}

	return e.Export(ctx, cl)
}

// printTable prints one page of data the way the console shows it.
func printTable[R any](w io.Writer, r render.Renderer[R], data []R, o listOpts) error {
	t := render.NewTable(r, render.Options(r, nil, o.pageSize, nil, true))
	if err := t.SetData(data); err != nil {
		return err
	}
	if err := sortTable(t, o); err != nil {
		return err
	}
	t.SetPage(o.page)

	snap := t.View()
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, strings.Join(snap.Header.ColumnNames(o.wide), "\t"))
	for _, row := range snap.Rows {
		ff := make([]string, 0, len(snap.Header))
		for i, f := range row.Fields() {
			if snap.Header[i].Wide && !o.wide {
				continue
			}
			ff = append(ff, f)
		}
		fmt.Fprintln(tw, strings.Join(ff, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if snap.PageCount > 1 {
		fmt.Fprintf(w, "\npage %d/%d, %d total\n", snap.Page.Page, snap.PageCount, snap.Total)
	}

	return nil
}

func sortTable[R any](t *model1.Table[R], o listOpts) error {
	dir := model1.Ascending
	if o.desc {
		dir = model1.Descending
	}
	if o.sort == "" {
		if !o.desc {
			return nil
		}
		return t.Sort(t.SortState().Column, dir)
	}
	col, ok := t.Header().IndexOf(strings.ToUpper(o.sort), true)
	if !ok {
		return fmt.Errorf("unknown column %q, expected one of %s", o.sort, strings.Join(t.Header().ColumnNames(true), ", "))
	}

	return t.Sort(col, dir)
}
