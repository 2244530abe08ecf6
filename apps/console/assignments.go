package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/trezcool/classroom/core/assignment"
)

const dateLayout = "2006-01-02"

func (cli *commandLine) list(status, search string) error {
	if err := cli.session.SetQueryFilter(status, search); err != nil {
		return err
	}
	snap, err := cli.session.Snapshot()
	if err != nil {
		return err
	}
	cli.printAssignments(snap.Filtered)
	return nil
}

func (cli *commandLine) stats() error {
	stats, err := cli.session.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "total: %d, pending: %d, submitted: %d, graded: %d\n",
		stats.Total, stats.Pending, stats.Submitted, stats.Graded)
	return nil
}

func (cli *commandLine) deadlines(limit int) error {
	list, err := cli.session.UpcomingDeadlines(limit)
	if err != nil {
		return err
	}
	cli.printAssignments(list)
	return nil
}

func (cli *commandLine) printAssignments(list []assignment.Assignment) {
	if len(list) == 0 {
		fmt.Fprintln(cli.out, "no assignments")
		return
	}
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCOURSE\tDUE\tSTATUS\tPRIORITY\tGRADE")
	for _, asg := range list {
		grade := "-"
		if asg.Grade.Valid {
			grade = fmt.Sprintf("%d/100", asg.Grade.Int)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			asg.ID, asg.Title, asg.Course, asg.DueDate.Format(dateLayout), asg.Status, asg.Priority, grade)
	}
	_ = w.Flush()
}
