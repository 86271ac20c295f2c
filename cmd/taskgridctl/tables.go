package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/taskgrid-io/taskgrid/internal/cluster"
	"github.com/taskgrid-io/taskgrid/internal/taskmanager"
)

func printTaskManagersTable(data any) {
	doc, ok := data.(*taskmanager.Document)
	if !ok || len(doc.TaskManagers) == 0 {
		fmt.Println("No task managers found")
		return
	}

	tms := doc.TaskManagers
	sort.Slice(tms, func(i, j int) bool {
		return tms[i].ID < tms[j].ID
	})

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"ID", "Path", "Data Port", "Heartbeat Age (ms)", "Slots", "Free Slots", "CPU Cores", "Physical Mem", "Free Mem", "Managed Mem",
	})
	for _, tm := range tms {
		table.Append([]string{
			tm.ID,
			tm.Path,
			fmt.Sprintf("%d", tm.DataPort),
			fmt.Sprintf("%d", tm.TimeSinceLastHeartbeat),
			fmt.Sprintf("%d", tm.SlotsNumber),
			fmt.Sprintf("%d", tm.FreeSlots),
			fmt.Sprintf("%.0f", tm.CPUCores),
			humanBytes(tm.PhysicalMemory),
			humanBytes(tm.FreeMemory),
			humanBytes(tm.ManagedMemory),
		})
	}
	table.Render()
}

func printTaskManagerDetail(data any) {
	doc, ok := data.(*taskmanager.Document)
	if !ok || len(doc.TaskManagers) == 0 {
		fmt.Println("Task manager not found")
		return
	}
	tm := doc.TaskManagers[0]

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Value"})
	table.Append([]string{"ID", tm.ID})
	table.Append([]string{"Path", tm.Path})
	table.Append([]string{"Data Port", fmt.Sprintf("%d", tm.DataPort)})
	table.Append([]string{"Heartbeat Age (ms)", fmt.Sprintf("%d", tm.TimeSinceLastHeartbeat)})
	table.Append([]string{"Slots", fmt.Sprintf("%d", tm.SlotsNumber)})
	table.Append([]string{"Free Slots", fmt.Sprintf("%d", tm.FreeSlots)})
	table.Append([]string{"CPU Cores", fmt.Sprintf("%.0f", tm.CPUCores)})
	table.Append([]string{"Physical Memory", humanBytes(tm.PhysicalMemory)})
	table.Append([]string{"Free Memory", humanBytes(tm.FreeMemory)})
	table.Append([]string{"Managed Memory", humanBytes(tm.ManagedMemory)})
	table.Render()

	if tm.Metrics == nil {
		fmt.Println("\nNo metrics snapshot available")
		return
	}
	m := tm.Metrics

	fmt.Println("\nMemory:")
	memTable := tablewriter.NewWriter(os.Stdout)
	memTable.SetHeader([]string{"", "Used", "Committed", "Max"})
	memTable.Append([]string{"Heap", humanBytes(m.HeapUsed), humanBytes(m.HeapCommitted), humanBytes(m.HeapMax)})
	memTable.Append([]string{"Non-Heap", humanBytes(m.NonHeapUsed), humanBytes(m.NonHeapCommitted), humanBytes(m.NonHeapMax)})
	memTable.Append([]string{"Total", humanBytes(m.TotalUsed), humanBytes(m.TotalCommitted), humanBytes(m.TotalMax)})
	memTable.Render()

	if len(m.GarbageCollectors) > 0 {
		fmt.Println("\nGarbage collectors:")
		gcTable := tablewriter.NewWriter(os.Stdout)
		gcTable.SetHeader([]string{"Name", "Count", "Time (ms)"})
		for _, gc := range m.GarbageCollectors {
			gcTable.Append([]string{gc.Name, gc.Count, gc.Time})
		}
		gcTable.Render()
	}
}

func printClusterStatus(data any) {
	status, ok := data.(*cluster.ClusterStatus)
	if !ok {
		fmt.Println("No status")
		return
	}
	fmt.Printf("Task managers: %d\n", len(status.TaskManagers))
	fmt.Printf("Slots: %d total, %d free\n", status.TotalSlots, status.FreeSlots)

	if len(status.TaskManagers) == 0 {
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Address", "Last Heartbeat", "Slots", "Free Slots"})
	for _, tm := range status.TaskManagers {
		table.Append([]string{
			tm.ID.String(),
			tm.Address,
			tm.LastHeartbeat.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d", tm.SlotsNumber),
			fmt.Sprintf("%d", tm.FreeSlots),
		})
	}
	table.Render()
}

func humanBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
